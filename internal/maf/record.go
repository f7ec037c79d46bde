package maf

// Record is one observed somatic variant from a MAF file, reduced to the
// fields the lollipop pipeline consumes.
type Record struct {
	Gene           string // Hugo_Symbol
	VariantType    string // SNP, DNP, INS, DEL, CNV, ...
	Classification string // Variant_Classification
	ProteinChange  string // resolved protein-change annotation, raw
	Sample         string // Tumor_Sample_Barcode
}

// Variant classifications that carry no protein-level change worth plotting.
const (
	ClassSilent = "Silent"
	TypeCNV     = "CNV"
)
