package validator

// FSProbe answers the filesystem questions asked by Directory.
type FSProbe interface {
	IsDir(path string) bool
	IsReadable(path string) bool
	IsWritable(path string) bool
}

// DirectoryConfig configures Directory.
type DirectoryConfig struct {
	Readable bool `mapstructure:"readable"`
	Writable bool `mapstructure:"writable"`
	// Probe overrides the operating system probe. Mostly useful in tests.
	Probe FSProbe `mapstructure:"-"`
}

// Directory validates that a path is a directory and, optionally, that it
// is readable and writable. Only the first failing check is reported.
type Directory struct {
	cfg DirectoryConfig
}

func NewDirectory(cfg DirectoryConfig) *Directory {
	if cfg.Probe == nil {
		cfg.Probe = osProbe{}
	}
	return &Directory{cfg: cfg}
}

// Validate implements Validator.
func (v *Directory) Validate(value any) Result {
	path, ok := stringOf(value)
	if !ok || path == "" || !v.cfg.Probe.IsDir(path) {
		return fail("validation.directory", "'%{value}' is not a directory", map[string]any{"value": value})
	}

	if v.cfg.Readable && !v.cfg.Probe.IsReadable(path) {
		return fail("validation.directory_readable", "'%{value}' directory is not readable", map[string]any{"value": path})
	}

	if v.cfg.Writable && !v.cfg.Probe.IsWritable(path) {
		return fail("validation.directory_writable", "'%{value}' directory is not writeable", map[string]any{"value": path})
	}

	return pass()
}
