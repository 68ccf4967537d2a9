package params

// DefaultIterations is the per-attempt work cap the original client hard-codes.
const DefaultIterations uint64 = 100000000000

// DefaultPoolURL is the pool host used when --url is not given.
const DefaultPoolURL = "server.tonguys.com"

// DefaultBoostFactor is the -F value passed to the miner when --boost-factor is not given.
const DefaultBoostFactor = 64

// MinedArtifact is the fixed filename every miner child writes on success.
const MinedArtifact = "mined.boc"

// MockPoolScheme selects the mock PoolClient instead of the HTTPS one.
const MockPoolScheme = "mock"

// Config is the immutable set of values assembled by the CLI layer and
// handed down to AppLoop. It is opaque to the mining supervision loop:
// nothing below AppLoop inspects it beyond the fields it needs.
type Config struct {
	Token       string
	PoolURL     string
	LogLevel    LogLevel
	LogPath     string
	MinerPath   string
	BoostFactor int
	Iterations  uint64
	Devices     []int
}
