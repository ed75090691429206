package configuration

const AppName = "sessiond"

// Bus topics.
const (
	TopicActions = "session.actions"
	TopicToasts  = "session.toasts"
)

// Snapshot singleton key; the snapshot table holds exactly one live row.
const SnapshotKey = "current"

// Token store keys (redis backend).
const (
	TokenAccessKey  = "sessiond:tokens:access"
	TokenRefreshKey = "sessiond:tokens:refresh"
)

// ConfigFileSearchPaths are tried in order when CONFIG_FILE_PATH is unset.
var ConfigFileSearchPaths = []string{
	"config.yaml",
	"/etc/sessiond/config.yaml",
}

// ArrayConfigFields are coerced from comma/space separated strings when they
// arrive through environment variables.
var ArrayConfigFields = []string{
	"app.allowed_origins",
	"tokens.redis.hosts",
}
