package appconf

// Environment describes which mode the application is running in. Tests get
// their own environment so that the storage layer can refuse to write
// database files to disk from a test run.
type Environment int

const (
	Test Environment = iota
	Development
	Production
)

// Config holds all the configuration settings for the application, read from
// command-line flags when the application starts.
type Config struct {
	Port      int
	Env       Environment
	ApiKeys   []string
	RateLimit int
	Verbose   bool
}

// EnvFlagToEnvironment maps the -env flag value to an Environment.
// Unrecognized values fall back to Development.
func EnvFlagToEnvironment(flag string) Environment {
	switch flag {
	case "test":
		return Test
	case "production":
		return Production
	default:
		return Development
	}
}

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}
