package domain

import "time"

// Report is the finalized record of one inspection. It is built only from a
// session that collected every mandatory field, appended once, and discarded.
type Report struct {
	Timestamp         time.Time
	Hotel             string
	RoomOrArea        string
	RoomPhotoLink     string
	BathroomPhotoLink string
	Remarks           string
	ReporterName      string
}

// Row returns the report in the sheet's fixed column order.
func (r Report) Row() []interface{} {
	return []interface{}{
		r.Timestamp.Format("2006-01-02 15:04:05"),
		r.Hotel,
		r.RoomOrArea,
		r.RoomPhotoLink,
		r.BathroomPhotoLink,
		r.Remarks,
		r.ReporterName,
	}
}
