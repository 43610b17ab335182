package fakeapi

import "github.com/Skotchmaster/storefront/internal/models"

const seededAt = "2024-01-15T09:00:00Z"

func seedCatalog() catalog {
	google := models.Brand{ID: 1, Name: "Google", Slug: "google"}
	samsung := models.Brand{ID: 2, Name: "Samsung", Slug: "samsung"}
	lenovo := models.Brand{ID: 3, Name: "Lenovo", Slug: "lenovo"}

	phones := models.Category{ID: 1, Name: "Phones", Slug: "phones", CategoryType: "phone"}
	tablets := models.Category{ID: 2, Name: "Tablets", Slug: "tablets", CategoryType: "tablet"}
	accessories := models.Category{ID: 3, Name: "Accessories", Slug: "accessories", CategoryType: "accessory"}

	salePrice := models.Price("149.50")

	return catalog{
		brands:     []models.Brand{google, samsung, lenovo},
		categories: []models.Category{phones, tablets, accessories},
		products: []models.Product{
			{
				ID: 1, Name: "Pixel 8", Slug: "pixel-8", Brand: &google, Category: &phones,
				ProductType: "phone", Description: "Google Pixel 8 smartphone.",
				Price: "699.00", CurrentPrice: "699.00", Stock: 15, InStock: true, IsFeatured: true,
				Images: []models.ProductImage{}, Reviews: []models.Review{},
				Variants: []models.ProductVariant{
					{ID: 1, Name: "128GB Obsidian", Storage: "128GB", Color: "Obsidian", RAM: "8GB",
						PriceAdjustment: "0.00", Price: "699.00", FinalPrice: "699.00", Stock: 10, SKU: "PX8-128-OBS"},
					{ID: 2, Name: "256GB Hazel", Storage: "256GB", Color: "Hazel", RAM: "8GB",
						PriceAdjustment: "100.00", Price: "799.00", FinalPrice: "799.00", Stock: 5, SKU: "PX8-256-HZL"},
				},
				CreatedAt: seededAt, UpdatedAt: seededAt,
			},
			{
				ID: 2, Name: "Galaxy S24", Slug: "galaxy-s24", Brand: &samsung, Category: &phones,
				ProductType: "phone", Description: "Samsung Galaxy S24 smartphone.",
				Price: "899.99", CurrentPrice: "899.99", Stock: 8, InStock: true,
				Images: []models.ProductImage{}, Reviews: []models.Review{},
				Variants: []models.ProductVariant{
					{ID: 3, Name: "256GB Onyx Black", Storage: "256GB", Color: "Onyx Black", RAM: "8GB",
						PriceAdjustment: "0.00", Price: "899.99", FinalPrice: "899.99", Stock: 8, SKU: "GS24-256-BLK"},
				},
				CreatedAt: seededAt, UpdatedAt: seededAt,
			},
			{
				ID: 3, Name: "Galaxy Tab S9", Slug: "galaxy-tab-s9", Brand: &samsung, Category: &tablets,
				ProductType: "tablet", Description: "Samsung Galaxy Tab S9.",
				Price: "849.00", CurrentPrice: "849.00", Stock: 6, InStock: true,
				Images: []models.ProductImage{}, Reviews: []models.Review{},
				Variants: []models.ProductVariant{
					{ID: 4, Name: "Wi-Fi 128GB Graphite", Storage: "128GB", Color: "Graphite", RAM: "8GB",
						PriceAdjustment: "0.00", Price: "849.00", FinalPrice: "849.00", Stock: 6, SKU: "GTS9-128-GRA"},
				},
				CreatedAt: seededAt, UpdatedAt: seededAt,
			},
			{
				ID: 4, Name: "Pixel Buds Pro", Slug: "pixel-buds-pro", Brand: &google, Category: &accessories,
				ProductType: "accessory", Description: "Noise cancelling earbuds.",
				Price: "199.00", SalePrice: &salePrice, CurrentPrice: salePrice, Stock: 40, InStock: true,
				Images: []models.ProductImage{}, Reviews: []models.Review{}, Variants: []models.ProductVariant{},
				IsUniqueVariant: true, CreatedAt: seededAt, UpdatedAt: seededAt,
			},
		},
		tablets: []models.EducationTablet{
			{ID: 1, Name: "Learner Tab 8", Slug: "learner-tab-8", Brand: lenovo.Name, Size: "8 inch",
				Description: "Classroom tablet with preloaded curriculum.", Price: "120.00", Stock: 100, IsActive: true},
			{ID: 2, Name: "Learner Tab 10", Slug: "learner-tab-10", Brand: lenovo.Name, Size: "10 inch",
				Description: "Large screen classroom tablet.", Price: "185.50", Stock: 3, IsActive: true},
		},
	}
}
