package maf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMAF = `#version 2.4
Hugo_Symbol	Entrez_Gene_Id	Variant_Classification	Variant_Type	Tumor_Sample_Barcode	HGVSp_Short
KIT	3815	Missense_Mutation	SNP	TCGA-AB-0001	p.V560D
KIT	3815	Nonsense_Mutation	SNP	TCGA-AB-0002	p.D816*
BRAF	673	Missense_Mutation	SNP	TCGA-AB-0001	p.V600E
KIT	3815	Silent	SNP	TCGA-AB-0003	p.L576L
`

func TestParser_Records(t *testing.T) {
	parser, err := NewParserFromReader(strings.NewReader(sampleMAF), "")
	require.NoError(t, err)

	cols := parser.Columns()
	assert.Equal(t, 0, cols.HugoSymbol)
	assert.Equal(t, 2, cols.VariantClassification)
	assert.Equal(t, 3, cols.VariantType)
	assert.Equal(t, 4, cols.TumorSampleBarcode)
	assert.Equal(t, 5, cols.ProteinChange)
	assert.Equal(t, ColHGVSpShort, parser.ChangeColumn())

	r, err := parser.Next()
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "KIT", r.Gene)
	assert.Equal(t, "Missense_Mutation", r.Classification)
	assert.Equal(t, "SNP", r.VariantType)
	assert.Equal(t, "TCGA-AB-0001", r.Sample)
	assert.Equal(t, "p.V560D", r.ProteinChange)

	count := 1
	for {
		r, err := parser.Next()
		require.NoError(t, err)
		if r == nil {
			break
		}
		count++
	}
	assert.Equal(t, 4, count)
}

func TestParser_FallbackChangeColumn(t *testing.T) {
	// No HGVSp_Short; Protein_Change is next in the search order.
	input := "Hugo_Symbol\tVariant_Classification\tProtein_Change\n" +
		"KIT\tMissense_Mutation\tp.V560D\n"

	parser, err := NewParserFromReader(strings.NewReader(input), "")
	require.NoError(t, err)
	assert.Equal(t, "Protein_Change", parser.ChangeColumn())

	r, err := parser.Next()
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "p.V560D", r.ProteinChange)
}

func TestParser_ExplicitChangeColumn(t *testing.T) {
	input := "Hugo_Symbol\tVariant_Classification\tHGVSp_Short\tmy_aa_col\n" +
		"KIT\tMissense_Mutation\tp.V560D\tp.K642E\n"

	parser, err := NewParserFromReader(strings.NewReader(input), "my_aa_col")
	require.NoError(t, err)
	assert.Equal(t, "my_aa_col", parser.ChangeColumn())

	r, err := parser.Next()
	require.NoError(t, err)
	assert.Equal(t, "p.K642E", r.ProteinChange)
}

func TestParser_MissingChangeColumn(t *testing.T) {
	input := "Hugo_Symbol\tVariant_Classification\n" +
		"KIT\tMissense_Mutation\n"

	_, err := NewParserFromReader(strings.NewReader(input), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no protein-change column found")

	_, err = NewParserFromReader(strings.NewReader(input), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"nope" not found`)
}

func TestParser_MissingRequiredColumn(t *testing.T) {
	input := "Chromosome\tHGVSp_Short\n1\tp.G12C\n"

	_, err := NewParserFromReader(strings.NewReader(input), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Hugo_Symbol")
}

func TestResolveChangeColumn(t *testing.T) {
	header := []string{"Hugo_Symbol", "AAChange", "Protein_Change"}

	// Search order prefers Protein_Change over AAChange.
	idx, name, err := ResolveChangeColumn(header, "")
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
	assert.Equal(t, "Protein_Change", name)

	idx, name, err = ResolveChangeColumn(header, "AAChange")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "AAChange", name)
}

func TestParseError(t *testing.T) {
	err := &ParseError{
		Line:    42,
		Message: "required column not found",
	}

	expected := "maf parse error at line 42: required column not found"
	assert.Equal(t, expected, err.Error())
}

func TestParser_ImplementsRecordParser(t *testing.T) {
	var _ RecordParser = (*Parser)(nil)
}
