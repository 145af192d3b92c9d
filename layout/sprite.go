package layout

// Capture names of the SPRITE read-two layout. Each name except Seq is also
// the barcode category its values are corrected against.
const (
	Term = "TERM"
	Even = "EVEN"
	Odd  = "ODD"
	DPM  = "DPM"
	Seq  = "SEQ"
)

// Linker motifs of the SPRITE read-two layout.
const (
	Linker1 = "TGACTTG"
	Linker2 = "TGACAACT"
	Linker3 = "TTGACTTG"
	Linker4 = "GACTTGTCATGTCTTCCGAT"
)

// SpriteElements describes SPRITE read two:
//
//	TERM[8-11] L1 EVEN[14-18] L2 ODD[14-18] L3 EVEN[14-18] L2 ODD[14-18]
//	TT L4 CT DPM[7-9] N T SEQ[20-24]
//
// L1-L3 tolerate one substitution, L4 tolerates two edits.
func SpriteElements() []Element {
	return []Element{
		Field(Term, 8, 11),
		Linker(Linker1, 1, Substitutions),
		Field(Even, 14, 18),
		Linker(Linker2, 1, Substitutions),
		Field(Odd, 14, 18),
		Linker(Linker3, 1, Substitutions),
		Field(Even, 14, 18),
		Linker(Linker2, 1, Substitutions),
		Field(Odd, 14, 18),
		Exact("TT"),
		Linker(Linker4, 2, Edits),
		Exact("CT"),
		Field(DPM, 7, 9),
		Any(1),
		Exact("T"),
		Field(Seq, 20, 24),
	}
}

// Sprite is the SPRITE read-two layout with the default preference.
var Sprite = MustNew(SpriteElements())
