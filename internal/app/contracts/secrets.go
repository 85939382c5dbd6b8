package contracts

type SecretsService interface {
	Seal(plaintext []byte) (string, error)
	Open(blob string) ([]byte, error)
}
