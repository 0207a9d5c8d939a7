package port

// Opener forwards a result path to the host's default document-open
// mechanism. Entirely outside the engine's responsibility; selecting a result
// hands the path over verbatim.
type Opener interface {
	Open(path string) error
}
