// Package file turns multipart uploads and local files into descriptors that
// validator.File can check.
//
// A Descriptor carries the client file name, the media type and the size.
// For uploads the declared Content-Type is trusted unless it is missing or
// generic; WithContentDetection forces detection from content. Local files
// are always sniffed with github.com/gabriel-vasile/mimetype.
//
// # Usage
//
//	v, err := validator.NewFile(validator.FileConfig{
//		MaxSize:   5 << 20,
//		MimeTypes: []string{"image/*"},
//	})
//	if err != nil {
//		return err
//	}
//
//	descs, err := file.FromHeaders(r.MultipartForm.File["avatar"], file.WithContentDetection())
//	if err != nil {
//		return err
//	}
//
//	if res := v.Validate(descs); !res.Valid {
//		return res.Err("avatar")
//	}
package file
