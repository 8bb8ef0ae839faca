package vt

// MouseProtocol selects which mouse events are reported at all.
type MouseProtocol int

const (
	MouseProtocolNone MouseProtocol = iota
	MouseProtocolX10
	MouseProtocolVT200
	MouseProtocolBtnEvent
	MouseProtocolAnyEvent
)

// MouseEncoding selects how a reported mouse event is framed on the wire.
type MouseEncoding int

const (
	MouseEncodingX10 MouseEncoding = iota
	MouseEncodingUTF8
	MouseEncodingSGR
	MouseEncodingURXVT
	MouseEncodingSGRPixels
)

// CursorStyle is the DECSCUSR cursor shape.
type CursorStyle int

const (
	CursorStyleBlinkingBlock CursorStyle = iota + 1
	CursorStyleSteadyBlock
	CursorStyleBlinkingUnderline
	CursorStyleSteadyUnderline
	CursorStyleBlinkingBar
	CursorStyleSteadyBar
)

// KeyReportingFlags are the kitty progressive-enhancement keyboard flags.
type KeyReportingFlags struct {
	Disambiguate        bool
	ReportEvents         bool
	ReportAlternateKeys  bool
	ReportAllAsEscape    bool
	ReportAssociatedText bool
}

// maxKeyReportingStack bounds the push/pop stack per spec.md's Terminal invariants.
const maxKeyReportingStack = 100

// Modes bundles every mode flag an encoder or the renderer needs to
// consult, snapshotted under the Terminal mutex before use.
type Modes struct {
	ApplicationCursorKeys bool
	OriginMode            bool
	AutoWrap              bool
	InsertMode            bool
	Columns132            bool
	Allow80132            bool
	CursorVisible         bool
	MouseProtocol         MouseProtocol
	MouseEncoding         MouseEncoding
	AlternateScrollMode   bool
	FocusEventMode        bool
	BracketedPasteMode    bool
	SynchronizedOutput    bool
	InAlternateScreenBuffer bool
	CursorStyle           CursorStyle
	KeyFlags              KeyReportingFlags
}
