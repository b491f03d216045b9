package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/library/docs" // swagger文档(swag生成)
	appai "github.com/xiebiao/library/internal/application/ai"
	appanalytics "github.com/xiebiao/library/internal/application/analytics"
	appbook "github.com/xiebiao/library/internal/application/book"
	apploan "github.com/xiebiao/library/internal/application/loan"
	appreview "github.com/xiebiao/library/internal/application/review"
	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/recommend"
	"github.com/xiebiao/library/internal/domain/review"
	"github.com/xiebiao/library/internal/domain/search"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
	"github.com/xiebiao/library/pkg/response"
)

// @title           图书馆管理系统 API
// @version         1.0
// @description     馆藏管理、借阅流转、评价与智能检索推荐
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// main 主程序入口
// 说明：手动依赖注入（wire.go提供编译期生成的等价版本）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 3. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 4. 初始化消息队列(可选)
	// 教学要点:接口变量必须保持untyped nil,
	// 把nil的*mq.Publisher赋给接口会得到非nil接口
	var publisher apploan.EventPublisher
	if cfg.MQ.Enabled {
		p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			log.Fatalf("初始化消息队列失败: %v", err)
		}
		defer p.Close()
		publisher = p
		fmt.Println("✓ 消息队列连接成功")
	}

	// 5. 依赖注入（手动组装）
	// 学习要点：依赖注入链
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	loanRepo := mysql.NewLoanRepository(db)
	reviewRepo := mysql.NewReviewRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
	m := metrics.New()

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)
	// 惰性逾期提升钩子:计数并(可选)发布事件
	loanService := loan.NewService(loanRepo, nil, func(l *loan.Loan) {
		m.LoanOverdue()
		if publisher != nil {
			event := mq.LoanEvent{
				LoanID:     l.ID,
				BookID:     l.BookID,
				UserID:     l.UserID,
				Status:     string(l.Status),
				DueDate:    l.DueDate,
				OccurredAt: time.Now(),
			}
			if err := publisher.Publish(mq.RoutingKeyLoanOverdue, event); err != nil {
				log.Printf("发布逾期事件失败: loan_id=%d, err=%v", l.ID, err)
			}
		}
	})
	reviewService := review.NewService(reviewRepo)
	searchService := search.NewService(bookRepo, reviewRepo)
	recommendService := recommend.NewService(bookRepo, loanRepo, reviewRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)
	profileUseCase := appuser.NewGetProfileUseCase(userRepo)
	createBookUseCase := appbook.NewCreateBookUseCase(bookService)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	getBookUseCase := appbook.NewGetBookUseCase(bookService, reviewRepo)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService, loanRepo)
	listCategoriesUseCase := appbook.NewListCategoriesUseCase(bookService)
	borrowUseCase := apploan.NewBorrowBookUseCase(loanRepo, bookRepo, txManager, nil, publisher, m)
	returnUseCase := apploan.NewReturnLoanUseCase(loanRepo, bookRepo, txManager, nil, publisher, m)
	listLoansUseCase := apploan.NewListLoansUseCase(loanService, bookRepo, userRepo)
	getLoanUseCase := apploan.NewGetLoanUseCase(loanService)
	submitReviewUseCase := appreview.NewSubmitReviewUseCase(reviewService, bookService)
	listReviewsUseCase := appreview.NewListReviewsUseCase(reviewService)
	deleteReviewUseCase := appreview.NewDeleteReviewUseCase(reviewService)
	smartSearchUseCase := appai.NewSmartSearchUseCase(searchService)
	recommendationsUseCase := appai.NewRecommendationsUseCase(recommendService)
	suggestCategoryUseCase := appai.NewSuggestCategoryUseCase()
	dashboardUseCase := appanalytics.NewDashboardUseCase(bookRepo, userRepo, loanRepo)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase, profileUseCase)
	bookHandler := handler.NewBookHandler(createBookUseCase, listBooksUseCase, getBookUseCase,
		updateBookUseCase, deleteBookUseCase, listCategoriesUseCase)
	loanHandler := handler.NewLoanHandler(borrowUseCase, returnUseCase, listLoansUseCase, getLoanUseCase)
	reviewHandler := handler.NewReviewHandler(submitReviewUseCase, listReviewsUseCase, deleteReviewUseCase)
	aiHandler := handler.NewAIHandler(smartSearchUseCase, recommendationsUseCase, suggestCategoryUseCase)
	analyticsHandler := handler.NewAnalyticsHandler(dashboardUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 6. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(m.GinMiddleware())

	// 7. 注册路由
	registerRoutes(r, m, authMiddleware,
		userHandler, bookHandler, loanHandler, reviewHandler, aiHandler, analyticsHandler)

	// 8. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	m *metrics.Metrics,
	authMiddleware *middleware.AuthMiddleware,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	loanHandler *handler.LoanHandler,
	reviewHandler *handler.ReviewHandler,
	aiHandler *handler.AIHandler,
	analyticsHandler *handler.AnalyticsHandler,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", m.Handler())

	// Swagger文档
	// 访问 http://localhost:8080/swagger/index.html 查看API文档
	// 生产环境建议禁用或添加访问控制
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireAuth := authMiddleware.RequireAuth()
	requireStaff := authMiddleware.RequireRole(user.RoleAdmin, user.RoleLibrarian)

	v1 := r.Group("/api/v1")
	{
		// 认证模块
		auth := v1.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
			auth.POST("/logout", requireAuth, userHandler.Logout)
		}

		// 个人资料
		v1.GET("/profile", requireAuth, userHandler.Profile)

		// 图书模块(查询公开,编目/维护/下架需要馆方人员)
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.List)
			books.GET("/categories", bookHandler.ListCategories)
			books.GET("/:id", bookHandler.Get)
			books.POST("", requireAuth, requireStaff, bookHandler.Create)
			books.PUT("/:id", requireAuth, requireStaff, bookHandler.Update)
			books.DELETE("/:id", requireAuth, requireStaff, bookHandler.Delete)

			// 评价挂在图书资源下
			books.GET("/:id/reviews", reviewHandler.List)
			books.POST("/:id/reviews", requireAuth, reviewHandler.Submit)
		}

		// 评价删除(作者或admin,权限在领域层校验)
		v1.DELETE("/reviews/:id", requireAuth, reviewHandler.Delete)

		// 借阅模块(全部需要登录)
		loans := v1.Group("/loans")
		loans.Use(requireAuth)
		{
			loans.POST("", loanHandler.Borrow)
			loans.GET("", loanHandler.List)
			loans.GET("/:id", loanHandler.Get)
			loans.POST("/:id/return", loanHandler.Return)
		}

		// 智能模块
		ai := v1.Group("/ai")
		{
			ai.GET("/search", aiHandler.Search)
			ai.GET("/recommendations", requireAuth, aiHandler.Recommendations)
			ai.POST("/suggest-category", requireAuth, requireStaff, aiHandler.SuggestCategory)
		}

		// 运营统计(馆方人员)
		v1.GET("/analytics/dashboard", requireAuth, requireStaff, analyticsHandler.Dashboard)
	}
}
