package model

// Member is the searchable entity. Username is nullable so ordering can be
// exercised with NULLS FIRST/LAST; TeamID is nullable because a member may
// not belong to any team.
type Member struct {
	ID       uint32  `gorm:"column:id;primaryKey;autoIncrement"`
	Username *string `gorm:"column:username;type:VARCHAR2(100)"`
	Age      int     `gorm:"column:age;not null;index:idx_member_age"`
	TeamID   *uint32 `gorm:"column:team_id;index:idx_member_team"`

	// Loaded only by association joins (FindByID)
	Team *Team `gorm:"foreignKey:TeamID;references:ID"`

	BaseEntity
}

// TableName specifies the table name for Member
func (*Member) TableName() string {
	return "member"
}

// NewMember creates a member; team may be nil.
func NewMember(username string, age int, team *Team) *Member {
	m := &Member{
		Username: &username,
		Age:      age,
	}
	m.ChangeTeam(team)
	return m
}

// ChangeTeam moves the member to team (nil detaches it).
func (m *Member) ChangeTeam(team *Team) {
	m.Team = team
	if team == nil {
		m.TeamID = nil
		return
	}
	id := team.ID
	m.TeamID = &id
}

// Name returns the username or "" when it is NULL
func (m *Member) Name() string {
	if m.Username == nil {
		return ""
	}
	return *m.Username
}
