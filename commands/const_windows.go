package commands

const (
	_etc = `C:\ProgramData\checkin-sheets`
	_var = `C:\ProgramData\checkin-sheets`

	DEFAULT_WORKDIR     = _var
	DEFAULT_CREDENTIALS = _etc + `\.google\credentials.json`
	DEFAULT_WORKBOOK    = "student_roster.xlsx"
	DEFAULT_FILE        = _var + `\student_roster.xlsx`
)
