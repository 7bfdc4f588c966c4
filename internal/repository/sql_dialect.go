package repository

import (
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// supportsRowLocking 是否支持 SELECT ... FOR UPDATE。
func supportsRowLocking(db *gorm.DB) bool {
	return supportsRowLockingByDialect(dbDialectName(db))
}

func supportsRowLockingByDialect(dialect string) bool {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return true
	default:
		// sqlite 写事务本身串行，不支持行锁语法
		return false
	}
}
