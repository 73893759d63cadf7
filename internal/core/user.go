package core

type Role string

const (
	RoleAdmin     Role = "admin"     // 管理員：可編輯所有資料
	RoleModerator Role = "moderator" // 審核員：可審核店家與員工資料
	RoleUser      Role = "user"      // 一般使用者
	RoleBanned    Role = "banned"    // 被禁用，無法登入或操作
)

type Status string

const (
	StatusActive    Status = "active"    // 正常可用
	StatusPending   Status = "pending"   // 待審核
	StatusSuspended Status = "suspended" // 暫時停權
	StatusDeleted   Status = "deleted"   // 已刪除（邏輯刪除）
)

// MissionPeriod 任務週期
type MissionPeriod string

const (
	MissionPeriodDaily  MissionPeriod = "daily"
	MissionPeriodWeekly MissionPeriod = "weekly"
)

// MissionDefinition VIP 任務目錄項目
type MissionDefinition struct {
	Key    string
	Period MissionPeriod
	Target int
}

var Missions = []MissionDefinition{
	{Key: "daily_checkin", Period: MissionPeriodDaily, Target: 1},
	{Key: "daily_browse", Period: MissionPeriodDaily, Target: 5},
	{Key: "weekly_favorite", Period: MissionPeriodWeekly, Target: 3},
}

func MissionByKey(key string) (MissionDefinition, bool) {
	for _, m := range Missions {
		if m.Key == key {
			return m, true
		}
	}
	return MissionDefinition{}, false
}
