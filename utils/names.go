// api/utils/names.go
package utils

import "fmt"

// Display-name tables for the Taobao sample snapshot. IDs are opaque in
// the dataset itself; these labels exist purely for readable charts, so
// a miss degrades to a fallback label and never fails.

var categoryNames = map[int64]string{
	4756105: "Beauty",
	4145813: "Pet Supplies",
	2355072: "Clothing",
	3607361: "Musical Instruments",
	982926:  "Baby Products",
	2520377: "Garden",
	3010202: "Books",
	4785201: "Health & Wellness",
	6823100: "Toys & Games",
	5551999: "Tools",
	1000001: "Automotive",
	1000002: "Electronics",
	1000003: "Furniture",
	1000004: "Grocery",
	1000005: "Watches",
	1000006: "Office Supplies",
	1000007: "Sports",
	1000008: "Home & Kitchen",
	1000009: "Shoes",
	1000010: "Jewelry",
}

var productNames = map[int64]string{
	812879:   "Gaming Laptop",
	138964:   "Graphics Card",
	3845720:  "MobilePhones",
	2331370:  "Cat Litter Box",
	2338453:  "Men's T-Shirt",
	1535294:  "Women's Jacket",
	2032668:  "Electric Guitar",
	4211339:  "Digital Piano",
	33711523: "Baby Stroller",
	2367945:  "Infant Diapers",
	25203771: "Garden Hose",
	25203772: "Outdoor Planter",
	30102021: "Mystery Novel",
	30102022: "Python Programming Book",
	47852011: "Vitamin C Tablets",
	47852012: "Resistance Bands",
	68231001: "LEGO Set",
	68231002: "Action Figure",
	55519991: "Electric Drill",
	55519992: "Screwdriver Set",
	10000011: "Car Vacuum Cleaner",
	10000012: "Dashboard Camera",
	10000021: "Wireless Earbuds",
	10000022: "Smartphone",
	10000031: "Office Chair",
	10000032: "Coffee Table",
	10000041: "Organic Almonds",
	10000042: "Pasta Pack",
	10000051: "Digital Sports Watch",
	10000052: "Leather Strap Watch",
	10000061: "Stapler",
	10000062: "Notebook Set",
	10000071: "Soccer Ball",
	10000072: "Tennis Racket",
	10000081: "Blender",
	10000082: "Air Fryer",
	10000091: "Running Shoes",
	10000092: "Leather Boots",
	10000101: "Gold Necklace",
	10000102: "Diamond Ring",
}

// CategoryName resolves a category ID to its display name, "Other" for
// unmapped IDs.
func CategoryName(id int64) string {
	if name, ok := categoryNames[id]; ok {
		return name
	}
	return "Other"
}

// ProductName resolves a product ID to its display name, "Product {id}"
// for unmapped IDs.
func ProductName(id int64) string {
	if name, ok := productNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Product %d", id)
}
