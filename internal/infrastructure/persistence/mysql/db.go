package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 连接池配置
	// 学习要点：合理的连接池配置对性能至关重要
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 学习要点：
// 1. AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
// 2. 生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
func autoMigrate(db *gorm.DB) error {
	// 注意：这里使用GORM的模型定义（带tag），不是domain层的实体
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&LoanModel{},
		&ReviewModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Name      string         `gorm:"size:50;not null;comment:姓名"`
	Role      string         `gorm:"size:20;not null;default:member;comment:角色(admin/librarian/member)"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 设计说明:
// 1. TotalCopies/AvailableCopies分开存储,可借数由借还事务原子维护
// 2. Tags存逗号分隔字符串,检索引擎在内存中匹配子串,不需要关系化
// 3. 书名/作者/分类加索引,覆盖列表查询和口味推荐
type BookModel struct {
	ID              uint           `gorm:"primaryKey"`
	Title           string         `gorm:"index;size:200;not null;comment:书名"`
	Author          string         `gorm:"index;size:100;not null;comment:作者"`
	ISBN            string         `gorm:"size:20;comment:ISBN号"`
	Publisher       string         `gorm:"size:100;comment:出版社"`
	PublishedYear   int            `gorm:"comment:出版年份"`
	Category        string         `gorm:"index;size:50;comment:分类"`
	Description     string         `gorm:"type:text;comment:图书简介"`
	CoverImage      string         `gorm:"size:500;comment:封面图片URL"`
	TotalCopies     int            `gorm:"not null;default:1;comment:馆藏副本总数"`
	AvailableCopies int            `gorm:"not null;default:1;comment:可借副本数"`
	Tags            string         `gorm:"size:500;comment:标签(逗号分隔)"`
	CreatedAt       time.Time      `gorm:"index;comment:创建时间"`
	UpdatedAt       time.Time      `gorm:"comment:更新时间"`
	DeletedAt       gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// LoanModel GORM借阅模型
// 教学要点:
// 1. (book_id, user_id)复合索引覆盖"是否已借这本书"查询
// 2. ReturnedAt用指针,NULL表示未归还
// 3. Status存字符串(active/returned/overdue),便于直接阅读数据
type LoanModel struct {
	ID         uint       `gorm:"primaryKey"`
	BookID     uint       `gorm:"index:idx_book_user;not null;comment:图书ID"`
	UserID     uint       `gorm:"index:idx_book_user;index;not null;comment:借阅人ID"`
	BorrowedAt time.Time  `gorm:"index;not null;comment:借出时间"`
	DueDate    time.Time  `gorm:"not null;comment:应还时间"`
	ReturnedAt *time.Time `gorm:"comment:归还时间(NULL=未归还)"`
	Status     string     `gorm:"index;size:20;not null;default:active;comment:状态(active/returned/overdue)"`
	CreatedAt  time.Time  `gorm:"comment:创建时间"`
	UpdatedAt  time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (LoanModel) TableName() string {
	return "loans"
}

// ReviewModel GORM评价模型
// 教学要点: (book_id, user_id)唯一索引保证每人每书一条评价,
// 覆盖式提交依赖这条约束兜底并发重复
type ReviewModel struct {
	ID        uint      `gorm:"primaryKey"`
	BookID    uint      `gorm:"uniqueIndex:uk_book_user;not null;comment:图书ID"`
	UserID    uint      `gorm:"uniqueIndex:uk_book_user;not null;comment:评价人ID"`
	Rating    int       `gorm:"not null;comment:评分(1-5)"`
	Comment   string    `gorm:"type:text;comment:评语"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ReviewModel) TableName() string {
	return "reviews"
}
