package history

import "time"

// Run is one recorded batch run.
type Run struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	A         string    `gorm:"size:1024" json:"a"`
	B         string    `gorm:"size:1024" json:"b"`
	Status    string    `gorm:"size:16;index" json:"status"`
	Error     string    `gorm:"type:text" json:"error,omitempty"`
	New       int       `json:"new"`
	Diff      int       `json:"diff"`
	Match     int       `json:"match"`
	Removed   int       `json:"removed"`
	CreatedAt time.Time `json:"created_at"`
	Entries   []Entry   `gorm:"foreignKey:RunID" json:"entries,omitempty"`
}

// TableName overrides the table name used by GORM.
func (Run) TableName() string { return "runs" }

// Entry is one classified resource of a run.
type Entry struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	RunID    uint   `gorm:"index" json:"-"`
	Category string `gorm:"size:16" json:"category"`
	Keyname  string `gorm:"size:512" json:"keyname"`
	URI      string `gorm:"size:2048" json:"uri"`
	Pixels   *int   `json:"pixels,omitempty"`
}

// TableName overrides the table name used by GORM.
func (Entry) TableName() string { return "run_entries" }
