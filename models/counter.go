package models

// Counter adalah baris sequence dengan increment atomik, menggantikan
// pola scan-max-then-increment yang bisa balapan saat create bersamaan.
// SeqKey contoh: "order:3:2025-01-17", "shift:3".
type Counter struct {
	SeqKey string `gorm:"primaryKey;type:varchar(64)" json:"seq_key"`
	Value  int64  `gorm:"not null;default:0" json:"value"`
}
