package mocks

// SecretVaultMock keeps secrets in a map unless a func override is set.
type SecretVaultMock struct {
	GetFunc    func(owner string) (string, error)
	SetFunc    func(owner, secret string) error
	DeleteFunc func(owner string) error

	Secrets map[string]string
}

func (m *SecretVaultMock) Get(owner string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(owner)
	}
	return m.Secrets[owner], nil
}

func (m *SecretVaultMock) Set(owner, secret string) error {
	if m.SetFunc != nil {
		return m.SetFunc(owner, secret)
	}
	if m.Secrets == nil {
		m.Secrets = make(map[string]string)
	}
	m.Secrets[owner] = secret
	return nil
}

func (m *SecretVaultMock) Delete(owner string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(owner)
	}
	delete(m.Secrets, owner)
	return nil
}
