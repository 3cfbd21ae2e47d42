package services

import "math"

// ConcreteType selects the mix strategy for setting posts.
type ConcreteType string

const (
	ConcreteThreePart ConcreteType = "three_part"
	ConcreteBagA      ConcreteType = "bag_a"
	ConcreteBagB      ConcreteType = "bag_b"
)

// Concrete material SKUs.
const (
	SKUConcreteSand    = "CONC-SAND"
	SKUConcreteCement  = "CONC-CEM"
	SKUConcreteQuick   = "CONC-QUIK"
	SKUConcreteBagA    = "CONC-BAG-A"
	SKUConcreteBagB    = "CONC-BAG-B"
)

// Posts-to-bags ratios. All three values target roughly 50 lb of concrete
// material per post; they are calibrated together and must not be changed
// independently of each other.
const (
	threePartPostsPerSandBag   = 10.0
	threePartPostsPerCementBag = 20.0
	threePartQuickBagsPerPost  = 0.5
	bagABagsPerPost            = 0.65
	bagBBagsPerPost            = 1.0
)

// SizeConcrete derives concrete-material quantities from the post count
// summed across every line item in the project. It runs once per
// recomputation, after all geometry calculators finish; sizing per line item
// would overstate bag counts.
func SizeConcrete(totalPosts float64, ct ConcreteType) []RawMaterial {
	if totalPosts <= 0 {
		return nil
	}

	switch ct {
	case ConcreteThreePart:
		return []RawMaterial{
			{SKU: SKUConcreteSand, Name: "Sand/Gravel Bag", Qty: math.Ceil(totalPosts / threePartPostsPerSandBag)},
			{SKU: SKUConcreteCement, Name: "Cement Bag", Qty: math.Ceil(totalPosts / threePartPostsPerCementBag)},
			{SKU: SKUConcreteQuick, Name: "Quick-Mix Bag", Qty: totalPosts * threePartQuickBagsPerPost},
		}
	case ConcreteBagA:
		return []RawMaterial{
			{SKU: SKUConcreteBagA, Name: "Single-Bag Mix Type A", Qty: math.Ceil(totalPosts * bagABagsPerPost)},
		}
	case ConcreteBagB:
		return []RawMaterial{
			{SKU: SKUConcreteBagB, Name: "Single-Bag Mix Type B", Qty: totalPosts * bagBBagsPerPost},
		}
	default:
		return nil
	}
}
