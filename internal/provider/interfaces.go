package provider

// credentialSource is the read side of the credential store.
type credentialSource interface {
	Credential(provider string, index int) (string, bool)
	Count(provider string) int
}

// credentialLoader is implemented by stores that can re-read their
// backing file.
type credentialLoader interface {
	Load() error
}
