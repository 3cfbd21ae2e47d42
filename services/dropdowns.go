package services

// FamilyOptions returns the fence families a line item can choose from.
var FamilyOptions = []FenceFamily{
	FamilyWoodVertical,
	FamilyWoodHorizontal,
	FamilyIron,
}

// StyleOptions lists the construction styles valid for each family.
var StyleOptions = map[FenceFamily][]StyleTag{
	FamilyWoodVertical:   {StyleStandard, StyleGoodNeighbor, StyleBoardOnBoard},
	FamilyWoodHorizontal: {StyleStandard},
	FamilyIron:           {StyleAmeristar, StyleIronRail},
}

// ConcreteOptions returns the concrete strategies a project can choose from.
var ConcreteOptions = []ConcreteType{
	ConcreteThreePart,
	ConcreteBagA,
	ConcreteBagB,
}

// UOMOptions returns the Unit of Measurement options for materials.
var UOMOptions = []string{
	"Each",
	"Box",
	"Bag",
	"LF",
	"SF",
	"Panel",
	"Roll",
	"Set",
}
