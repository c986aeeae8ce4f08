package domain

import "time"

// Merchant is a dashboard account. A merchant owns at most one store,
// resolved by stores.user_id.
type Merchant struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id" form:"id"`
	Email     string    `gorm:"uniqueIndex" json:"email" form:"email"`
	Password  string    `json:"-" form:"password"`
	Realname  string    `json:"realname" form:"realname"`
	Status    string    `gorm:"size:16" json:"status" form:"status"`
	LastLogin time.Time `json:"last_login" form:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Merchant) TableName() string {
	return "merchants"
}

type SysConfig struct {
	ID        int64     `json:"id,string" form:"id"`
	Sort      int       `json:"sort" form:"sort"`
	Type      string    `gorm:"index" json:"type" form:"type"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	Value     string    `json:"value" form:"value"`
	Remark    string    `json:"remark" form:"remark"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (SysConfig) TableName() string {
	return "sys_config"
}

// SysOprLog records dashboard operations for auditing.
type SysOprLog struct {
	ID        int64     `json:"id,string" form:"id"`
	OprName   string    `gorm:"index" json:"opr_name" form:"opr_name"`
	OptAction string    `gorm:"index" json:"opt_action" form:"opt_action"`
	OptDesc   string    `json:"opt_desc" form:"opt_desc"`
	OptTime   time.Time `json:"opt_time" form:"opt_time"`
}

// TableName Specify table name
func (SysOprLog) TableName() string {
	return "sys_opr_log"
}
