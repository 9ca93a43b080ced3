package mocks

// MockIndexFinder はテスト用のIndexFinderモック
type MockIndexFinder struct {
	Path  string
	Error error
}

// Find は設定されたパスとエラーを返します
func (f *MockIndexFinder) Find() (string, error) {
	return f.Path, f.Error
}
