package main

import (
	"errors"
	"os"
	"time"

	"github.com/ebookstore-next/internal/config"
	"github.com/ebookstore-next/internal/logger"
	"github.com/ebookstore-next/internal/models"

	"gorm.io/gorm"
)

type seedBook struct {
	Title     string
	Author    string
	ISBN      string
	Price     string
	Stock     int
	PageCount int
	Publisher string
	Year      int
	Category  string
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	// 连接数据库
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	categories := []models.Category{
		{Name: "Roman", Description: "Yerli ve yabancı romanlar"},
		{Name: "Bilim", Description: "Popüler bilim kitapları"},
		{Name: "Tarih", Description: "Tarih ve biyografi"},
		{Name: "Teknoloji", Description: "Yazılım ve teknoloji"},
	}
	categoryIDs := map[string]uint{}
	for _, cat := range categories {
		var existing models.Category
		err := models.DB.Where("name = ?", cat.Name).First(&existing).Error
		switch {
		case err == nil:
			stdLog.Printf("Category already exists: %s", cat.Name)
			categoryIDs[cat.Name] = existing.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Name, err)
				continue
			}
			stdLog.Printf("Created category: %s", cat.Name)
			categoryIDs[cat.Name] = cat.ID
		default:
			stdLog.Fatalf("Failed to load category %s: %v", cat.Name, err)
		}
	}

	books := []seedBook{
		{"Sefiller", "Victor Hugo", "9789750719387", "89.90", 25, 1724, "İş Bankası Kültür Yayınları", 1862, "Roman"},
		{"Suç ve Ceza", "Fyodor Dostoyevski", "9789750719325", "74.50", 30, 687, "İş Bankası Kültür Yayınları", 1866, "Roman"},
		{"Kürk Mantolu Madonna", "Sabahattin Ali", "9789753638029", "45.00", 50, 160, "Yapı Kredi Yayınları", 1943, "Roman"},
		{"Zamanın Kısa Tarihi", "Stephen Hawking", "9789750723674", "62.00", 12, 248, "Alfa Yayınları", 1988, "Bilim"},
		{"Gen", "Siddhartha Mukherjee", "9786051711990", "98.00", 8, 608, "Domingo Yayınevi", 2016, "Bilim"},
		{"Nutuk", "Mustafa Kemal Atatürk", "9789751605338", "55.00", 40, 612, "Türk Tarih Kurumu", 1927, "Tarih"},
		{"Sapiens", "Yuval Noah Harari", "9786055029060", "79.90", 18, 412, "Kolektif Kitap", 2011, "Tarih"},
		{"Temiz Kod", "Robert C. Martin", "9786053279436", "120.00", 6, 464, "Kodlab", 2008, "Teknoloji"},
		{"The Go Programming Language", "Alan Donovan, Brian Kernighan", "9780134190440", "150.00", 5, 380, "Addison-Wesley", 2015, "Teknoloji"},
	}
	for _, b := range books {
		categoryID, ok := categoryIDs[b.Category]
		if !ok {
			stdLog.Printf("Skip book %s: category %s missing", b.Title, b.Category)
			continue
		}
		var count int64
		models.DB.Model(&models.Book{}).Where("isbn = ?", b.ISBN).Count(&count)
		if count > 0 {
			stdLog.Printf("Book already exists: %s", b.Title)
			continue
		}
		price, err := models.ParseMoney(b.Price)
		if err != nil {
			stdLog.Printf("Invalid price for %s: %v", b.Title, err)
			continue
		}
		published := time.Date(b.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		book := models.Book{
			Title:         b.Title,
			Author:        b.Author,
			ISBN:          b.ISBN,
			Price:         price,
			Stock:         b.Stock,
			PageCount:     b.PageCount,
			Publisher:     b.Publisher,
			PublishedDate: &published,
			CategoryID:    categoryID,
			IsActive:      true,
		}
		if err := models.DB.Create(&book).Error; err != nil {
			stdLog.Printf("Failed to create book %s: %v", b.Title, err)
			continue
		}
		stdLog.Printf("Created book: %s", b.Title)
	}

	if err := models.InitDefaultAdmin(models.DB, os.Getenv("EB_DEFAULT_ADMIN_EMAIL"), os.Getenv("EB_DEFAULT_ADMIN_PASSWORD")); err != nil {
		stdLog.Printf("Failed to init admin: %v", err)
	}
	stdLog.Printf("Seed completed")
}
