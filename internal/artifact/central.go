package artifact

// CentralBackend is the central, per-name layout:
// <identity root>/repos/<name>/{secrets.enc,recipients.json,meta.json}.
// It is the successor to the teacher's per-project ".kanuka" registration
// model, generalized so one identity can hold many named vaults.
type CentralBackend struct {
	Dir  string
	name string
}

func (b CentralBackend) Exists() (bool, error)             { return dirBackend{b.Dir}.exists() }
func (b CentralBackend) LoadPayload() ([]byte, error)       { return dirBackend{b.Dir}.loadPayload() }
func (b CentralBackend) SavePayload(data []byte) error      { return dirBackend{b.Dir}.savePayload(data) }
func (b CentralBackend) LoadRecipients() ([]byte, error)    { return dirBackend{b.Dir}.loadRecipients() }
func (b CentralBackend) SaveRecipients(data []byte) error   { return dirBackend{b.Dir}.saveRecipients(data) }
func (b CentralBackend) LoadMeta() ([]byte, bool, error)    { return dirBackend{b.Dir}.loadMeta() }
func (b CentralBackend) SaveMeta(data []byte) error         { return dirBackend{b.Dir}.saveMeta(data) }
func (b CentralBackend) Root() string                       { return b.Dir }

// Name returns the validated vault name this backend was resolved from.
func (b CentralBackend) Name() string { return b.name }
