package seeder

// seedProduct referencia a categoria pela posição em seedCategories
type seedProduct struct {
	Name      string
	Price     string
	Inventory int
	Image     string
	Category  int
}

var seedCategories = []string{
	"Café",
	"Bebidas Frias",
	"Padaria",
	"Doces",
}

var seedProducts = []seedProduct{
	{Name: "Espresso", Price: "7.50", Inventory: 40, Image: "espresso.jpg", Category: 0},
	{Name: "Cappuccino", Price: "12.00", Inventory: 30, Image: "cappuccino.jpg", Category: 0},
	{Name: "Latte", Price: "13.50", Inventory: 30, Image: "latte.jpg", Category: 0},
	{Name: "Mocha", Price: "14.00", Inventory: 20, Image: "mocha.jpg", Category: 0},
	{Name: "Cold Brew", Price: "15.00", Inventory: 15, Image: "cold-brew.jpg", Category: 1},
	{Name: "Limonada", Price: "9.00", Inventory: 25, Image: "limonada.jpg", Category: 1},
	{Name: "Chá Gelado", Price: "8.50", Inventory: 25, Image: "cha-gelado.jpg", Category: 1},
	{Name: "Pão de Queijo", Price: "6.00", Inventory: 60, Image: "pao-de-queijo.jpg", Category: 2},
	{Name: "Croissant", Price: "10.00", Inventory: 20, Image: "croissant.jpg", Category: 2},
	{Name: "Brigadeiro", Price: "4.00", Inventory: 80, Image: "brigadeiro.jpg", Category: 3},
	{Name: "Bolo de Cenoura", Price: "11.00", Inventory: 12, Image: "bolo-de-cenoura.jpg", Category: 3},
}
