package crispulator

// ScreenSetup is the experiment design for one simulated screen.
type ScreenSetup interface {
	screenSetup()
}

// GrowthScreen selects on proliferation: cells with high phenotypes
// outgrow the rest between bottlenecks, and the abundance shift of each
// guide is read out by sequencing before and after selection.
type GrowthScreen struct {
	// Representation is the number of cells seeded per guide at transfection
	Representation float64

	// BottleneckRepresentation is the number of cells per guide the
	// population is held at around each bottleneck
	BottleneckRepresentation float64

	// MOI is the multiplicity of infection used for Poisson thinning
	MOI float64

	// Noise is the standard deviation of the phenotype measurement noise
	Noise float64

	// NumBottlenecks is the number of bottleneck/regrowth rounds the
	// selection assay runs after transfection
	NumBottlenecks int
}

func (*GrowthScreen) screenSetup() {}

// BinRange is one FACS collection gate, as a quantile range over the
// sorted expression readout.
type BinRange struct {
	Name   string
	Lo, Hi float64
}

// FacsScreen sorts cells into expression bins and compares guide
// abundance between them. Phenotype assignment itself is noiseless; the
// sorter's measurement noise applies at sort time.
type FacsScreen struct {
	// Representation is the number of cells seeded per guide at transfection
	Representation float64

	// BottleneckRepresentation is the number of cells per guide the
	// population is expanded (or bottlenecked) to before sorting
	BottleneckRepresentation float64

	// MOI is the multiplicity of infection used for Poisson thinning
	MOI float64

	// SortNoise is the standard deviation of the expression measurement
	// noise applied while sorting
	SortNoise float64

	// Bins are the collection gates, as quantile ranges in [0, 1]
	Bins []BinRange
}

func (*FacsScreen) screenSetup() {}
