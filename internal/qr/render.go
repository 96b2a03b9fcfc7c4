// Package qr рендерит подписанный токен в сканируемый QR-код.
package qr

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

const imageSize = 512 // px, достаточно для печати и экрана

// Rendered — результат рендеринга: PNG и base64-форма для вставки
// в JSON-ответы
type Rendered struct {
	PNG    []byte
	Base64 string
}

// Render кодирует токен в QR с высоким уровнем избыточности (High),
// переживающим частичное повреждение носителя. Чистая функция: куда
// сохранять картинку, решает вызывающий.
func Render(token string) (*Rendered, error) {
	png, err := qrcode.Encode(token, qrcode.High, imageSize)
	if err != nil {
		return nil, err
	}
	return &Rendered{
		PNG:    png,
		Base64: base64.StdEncoding.EncodeToString(png),
	}, nil
}
