package model

// Team groups members
type Team struct {
	ID   uint32 `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;type:VARCHAR2(100);not null;uniqueIndex:idx_team_name"`

	BaseEntity
}

// TableName specifies the table name for Team
func (*Team) TableName() string {
	return "team"
}

func NewTeam(name string) *Team {
	return &Team{Name: name}
}
