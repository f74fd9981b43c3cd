package main

import (
	"context"
	"log"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/config"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
	dbmodel "github.com/RoyceAzure/lab/pos/internal/infra/repository/db/model"
	"github.com/shopspring/decimal"
)

// 灌入展示用的商品與會員資料，重複執行會跳過已存在的主鍵
func main() {
	cf := config.GetConfig()

	conn, err := db.GetDbConn(cf.DbName, cf.DbHost, cf.DbPort, cf.DbUser, cf.DbPas)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	dao := db.NewDbDao(conn)
	if err := dao.InitMigrate(); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	ctx := context.Background()
	memberRepo := db.NewMemberRepo(dao)
	productRepo := db.NewProductRepo(dao)

	for _, member := range seedMembers() {
		if err := memberRepo.CreateMember(ctx, member); err != nil {
			log.Printf("skip member %d: %v", member.MemberID, err)
		}
	}

	for _, product := range seedProducts() {
		if err := productRepo.CreateProduct(ctx, product); err != nil {
			log.Printf("skip product %d: %v", product.ProductID, err)
		}
	}

	log.Println("seed completed")
}

func seedMembers() []*dbmodel.Member {
	return []*dbmodel.Member{
		{MemberID: 1, Name: "Member A", Phone: "0811-111-111"},
		{MemberID: 2, Name: "Member B", Phone: "0822-222-222"},
	}
}

func seedProducts() []*dbmodel.Product {
	type row struct {
		id      uint
		name    string
		satuan  string
		harga   int64
		modal   int64
		expired string
		barcode string
		note    string
		memberA int64
		memberB int64
		grosir  []dbmodel.ProductGrosir
	}

	grosirTier := func(productID uint, minQty int, harga int64) dbmodel.ProductGrosir {
		return dbmodel.ProductGrosir{ProductID: productID, MinQty: minQty, Harga: decimal.NewFromInt(harga)}
	}

	rows := []row{
		{1, "Produk 1", "pcs", 10000, 8000, "2025-12-31", "1234567890123", "Catatan untuk produk 1", 9500, 9000,
			[]dbmodel.ProductGrosir{grosirTier(1, 5, 9000), grosirTier(1, 10, 8500)}},
		{2, "Produk 2", "kg", 20000, 15000, "2025-11-30", "1234567890124", "Catatan untuk produk 2", 19000, 18500,
			[]dbmodel.ProductGrosir{grosirTier(2, 10, 18000)}},
		{3, "Produk 3", "liter", 15000, 12000, "2025-10-15", "1234567890125", "Catatan untuk produk 3", 14000, 13500, nil},
		{4, "Produk 4", "box", 50000, 40000, "2025-09-01", "1234567890126", "Catatan untuk produk 4", 48000, 47000,
			[]dbmodel.ProductGrosir{grosirTier(4, 3, 47500)}},
		{5, "Produk 5", "pcs", 30000, 25000, "2025-08-20", "1234567890127", "Catatan untuk produk 5", 29000, 28000, nil},
		{6, "Produk 6", "kg", 12000, 10000, "2025-07-15", "1234567890128", "Catatan untuk produk 6", 11500, 11000, nil},
		{7, "Produk 7", "liter", 18000, 15000, "2025-06-10", "1234567890129", "Catatan untuk produk 7", 17500, 17000, nil},
		{8, "Produk 8", "box", 60000, 50000, "2025-05-05", "1234567890130", "Catatan untuk produk 8", 58000, 57000, nil},
		{9, "Produk 9", "pcs", 25000, 20000, "2025-04-01", "1234567890131", "Catatan untuk produk 9", 24000, 23000, nil},
		{10, "Produk 10", "kg", 22000, 18000, "2025-03-15", "1234567890132", "Catatan untuk produk 10", 21000, 20500, nil},
	}

	products := make([]*dbmodel.Product, 0, len(rows))
	for _, r := range rows {
		expired, _ := time.Parse("2006-01-02", r.expired)
		products = append(products, &dbmodel.Product{
			ProductID: r.id,
			Name:      r.name,
			Satuan:    r.satuan,
			Harga:     decimal.NewFromInt(r.harga),
			Modal:     decimal.NewFromInt(r.modal),
			Expired:   expired,
			Barcode:   r.barcode,
			Note:      r.note,
			MemberPrices: []dbmodel.ProductMemberPrice{
				{ProductID: r.id, MemberID: 1, Harga: decimal.NewFromInt(r.memberA)},
				{ProductID: r.id, MemberID: 2, Harga: decimal.NewFromInt(r.memberB)},
			},
			GrosirTiers: r.grosir,
		})
	}
	return products
}
