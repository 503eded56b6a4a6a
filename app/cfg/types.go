package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Pipeline configuration
	DataDir           string
	OutputDir         string
	RulesFile         string
	WorkerCount       int
	SchedulerInterval int

	// HTTP configuration
	Port         string
	APIAccessKey string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
