package config

const (
	defaultConfigPath      = "~/.config/csv2phon/config.toml"
	localConfigName        = "csv2phon.toml"
	defaultProjectDir      = "~/.local/share/csv2phon/project"
	defaultBaseDir         = "."
	defaultLogDir          = "~/.local/share/csv2phon/logs"
	defaultEncoding        = "UTF-8"
	defaultDelimiter       = ","
	defaultQuote           = "\""
	defaultSyllabifierLang = "eng"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ProjectDir: defaultProjectDir,
			BaseDir:    defaultBaseDir,
			LogDir:     defaultLogDir,
		},
		CSV: CSV{
			Encoding:  defaultEncoding,
			Delimiter: defaultDelimiter,
			Quote:     defaultQuote,
		},
		Syllabifier: Syllabifier{
			DefaultLanguage: defaultSyllabifierLang,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
