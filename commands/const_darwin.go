package commands

const (
	_etc = "/usr/local/etc/com.github.csiga-ovi/checkin-sheets"
	_var = "/usr/local/var/com.github.csiga-ovi/checkin-sheets"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"
	DEFAULT_WORKBOOK    = "student_roster.xlsx"
	DEFAULT_FILE        = _var + "/student_roster.xlsx"
)
