package models

type Configuration struct {
	App      AppConfiguration      `mapstructure:"app"      validate:"required"`
	API      APIConfiguration      `mapstructure:"api"      validate:"required"`
	Database DatabaseConfiguration `mapstructure:"database" validate:"required"`
	Tokens   TokensConfiguration   `mapstructure:"tokens"   validate:"required"`
	Toasts   ToastsConfiguration   `mapstructure:"toasts"   validate:"required"`
	Journal  JournalConfiguration  `mapstructure:"journal"`
}

type AppConfiguration struct {
	Port           int      `mapstructure:"port"            validate:"gte=80,lte=65535"`
	LogLevel       string   `mapstructure:"log_level"       validate:"oneof=debug info warn error fatal panic"`
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"required"`
	// RefreshLeewaySeconds is how long before access-token expiry the
	// session keeper triggers a silent refresh.
	RefreshLeewaySeconds int `mapstructure:"refresh_leeway_seconds" validate:"gte=5,lte=3600"`
}

// APIConfiguration points at the upstream auth/OTP REST API.
type APIConfiguration struct {
	BaseURL        string `mapstructure:"base_url"        validate:"required,http_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=1,lte=120"`
}

type DatabaseConfiguration struct {
	Type     string                 `mapstructure:"type"     validate:"required,oneof=sqlite postgres"`
	Sqlite   *SqliteConfiguration   `mapstructure:"sqlite"   validate:"required_if=Type sqlite"`
	Postgres *PostgresConfiguration `mapstructure:"postgres" validate:"required_if=Type postgres"`
}

type SqliteConfiguration struct {
	Path string `mapstructure:"path" validate:"required"`
}

type PostgresConfiguration struct {
	Host     string `mapstructure:"host"     validate:"required"`
	Port     int32  `mapstructure:"port"     validate:"gte=80,lte=65535"`
	User     string `mapstructure:"user"     validate:"required"`
	Password string `mapstructure:"password" validate:"required"`
	Name     string `mapstructure:"name"     validate:"required"`
	SSLMode  string `mapstructure:"sslmode"`
}

type TokensConfiguration struct {
	Type  string                    `mapstructure:"type"  validate:"required,oneof=memory file redis"`
	File  *FileTokensConfiguration  `mapstructure:"file"  validate:"required_if=Type file"`
	Redis *RedisTokensConfiguration `mapstructure:"redis" validate:"required_if=Type redis"`
}

type FileTokensConfiguration struct {
	Path string `mapstructure:"path" validate:"required"`
}

type RedisTokensConfiguration struct {
	Hosts         []string `mapstructure:"hosts"`
	Password      string   `mapstructure:"password"`
	TLSEnabled    bool     `mapstructure:"tls_enabled"`
	TLSServerName string   `mapstructure:"tls_server_name"`
}

type ToastsConfiguration struct {
	Type       string                         `mapstructure:"type"       validate:"required,oneof=log filesystem"`
	Filesystem *FilesystemToastsConfiguration `mapstructure:"filesystem" validate:"required_if=Type filesystem"`
}

type FilesystemToastsConfiguration struct {
	Directory string `mapstructure:"directory" validate:"required"`
}

// JournalConfiguration controls the searchable action history. Disabled by
// default; the engine works identically without it.
type JournalConfiguration struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory" validate:"required_if=Enabled true"`
}
