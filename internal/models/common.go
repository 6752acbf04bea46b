// internal/models/common.go
package models

// MediaPointer references a file stored on S3 or a similar service.
type MediaPointer struct {
	ID       string `bson:"id" json:"id"`
	URL      string `bson:"url" json:"url"`
	FileName string `bson:"fileName" json:"fileName"`
	FileType string `bson:"fileType" json:"fileType"` // e.g. "image/png", "application/pdf"
}
