package cart

// MemoryStorage — хранилище снимка корзины в памяти.
// Используется в тестах и там, где долговременное хранилище не нужно
type MemoryStorage struct {
	data []byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load() ([]byte, error) {
	return s.data, nil
}

func (s *MemoryStorage) Save(data []byte) error {
	s.data = append([]byte(nil), data...)
	return nil
}
