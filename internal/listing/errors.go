package listing

import "errors"

// ErrEncode はYAMLの出力に失敗した場合のエラー
var ErrEncode = errors.New("YAMLの出力に失敗しました")
