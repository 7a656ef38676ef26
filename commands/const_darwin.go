package commands

const (
	_etc = "/usr/local/etc/com.github.uhppoted"
	_var = "/usr/local/var/com.github.uhppoted"

	DEFAULT_WORKDIR     = _var + "/rollover"
	DEFAULT_CREDENTIALS = _etc + "/rollover/.google/credentials.json"
	DEFAULT_APIKEY      = _etc + "/rollover/.google/apikey.json"

	BROWSER = "open"
)
