package config

// ScoringConfig selects the scoring strategy and the thresholds used when
// deriving the stored review status
type ScoringConfig struct {
	Strategy      string
	FlagThreshold int
	SafeThreshold int
}

// OpenAIConfig configures the remote scoring strategy
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// ServerConfig configures the SMTP content filter
type ServerConfig struct {
	FilterType       string
	ListenAddress    string
	BlockHighRisk    bool
	RejectThreshold  int
	FlagHeader       string
	ScoreHeader      string
	IndicatorsHeader string
	SubjectPrefix    string
	ModifySubject    bool
	RelayAddress     string
	RelayPort        int
	RelayEnabled     bool
}

// GetScoring returns the scoring configuration
func (c *Config) GetScoring() ScoringConfig {
	return ScoringConfig{
		Strategy:      c.GetString("scoring.strategy"),
		FlagThreshold: c.GetInt("scoring.flag_threshold"),
		SafeThreshold: c.GetInt("scoring.safe_threshold"),
	}
}

// GetOpenAI returns the remote scoring configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
		MaxBodySize: c.GetInt("openai.max_body_size"),
	}
}

// GetServer returns the SMTP filter configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		FilterType:       c.GetString("server.filter_type"),
		ListenAddress:    c.GetString("server.listen_address"),
		BlockHighRisk:    c.GetBool("server.block_high_risk"),
		RejectThreshold:  c.GetInt("server.reject_threshold"),
		FlagHeader:       c.GetString("server.headers.flag"),
		ScoreHeader:      c.GetString("server.headers.score"),
		IndicatorsHeader: c.GetString("server.headers.indicators"),
		SubjectPrefix:    c.GetString("server.subject_prefix"),
		ModifySubject:    c.GetBool("server.modify_subject"),
		RelayAddress:     c.GetString("server.relay.address"),
		RelayPort:        c.GetInt("server.relay.port"),
		RelayEnabled:     c.GetBool("server.relay.enabled"),
	}
}
