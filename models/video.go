package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VideoRecord es el documento que se guarda por cada video enviado.
// El slug es la única clave pública de búsqueda, nunca se expone el _id.
type VideoRecord struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"-"`
	Slug          string               `bson:"slug" json:"slug"`
	OriginalLink  string               `bson:"originalLink" json:"originalLink"`
	DownloadLink  string               `bson:"downloadLink" json:"downloadLink"`
	FileName      string               `bson:"fileName" json:"fileName"`
	Hosts         map[string]HostEntry `bson:"hosts" json:"hosts"`
	Status        string               `bson:"status" json:"status"`
	IsGoogleDrive bool                 `bson:"isGoogleDrive" json:"isGoogleDrive"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
}

// HostEntry es el estado de la subida en un host concreto
type HostEntry struct {
	Status      string    `bson:"status" json:"status"`
	FileCode    string    `bson:"filecode,omitempty" json:"filecode,omitempty"`
	Error       string    `bson:"error,omitempty" json:"error,omitempty"`
	PlayerLink  string    `bson:"playerLink,omitempty" json:"playerLink,omitempty"`
	LastUpdated time.Time `bson:"lastUpdated" json:"lastUpdated"`
}

// VideoList es el resultado de un listado paginado
type VideoList struct {
	Videos      []VideoRecord `json:"videos"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	Total       int64         `json:"total"`
}

// Estados del registro completo
const (
	Processing           = "processing"
	Completed            = "completed"
	ManualUploadRequired = "manual_upload_required"
)

// Estados de cada host
const (
	HostPending              = "pending"
	HostUploading            = "uploading"
	HostCompleted            = "completed"
	HostFailed               = "failed"
	HostManualUploadRequired = "manual_upload_required"
)
