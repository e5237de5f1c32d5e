package interp

import (
	"testing"

	"github.com/glossa-lang/glossa/pkg/ast"
	"github.com/glossa-lang/glossa/pkg/lexer"
	"github.com/glossa-lang/glossa/pkg/parser"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	prog, err := parser.New(toks).Parse()
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	return prog
}

func runProgram(t *testing.T, src string, input []string) (*SliceSink, error) {
	t.Helper()
	prog := mustParse(t, src)
	sink := &SliceSink{}
	source := NewSliceSource(input)
	err := New().Run(prog, sink, source, nil)
	return sink, err
}

func TestScenarioAssignAndWrite(t *testing.T) {
	src := `ΠΡΟΓΡΑΜΜΑ T ΜΕΤΑΒΛΗΤΕΣ ΑΚΕΡΑΙΕΣ: α ΑΡΧΗ α<-42 ΓΡΑΨΕ α ΤΕΛΟΣ_ΠΡΟΓΡΑΜΜΑΤΟΣ`
	sink, err := runProgram(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.Lines) != 1 || sink.Lines[0] != "42" {
		t.Fatalf("expected [\"42\"], got %v", sink.Lines)
	}
}

func TestScenarioFactorialViaFor(t *testing.T) {
	src := `
ΠΡΟΓΡΑΜΜΑ Π
ΜΕΤΑΒΛΗΤΕΣ
  ΑΚΕΡΑΙΕΣ: f, i
ΑΡΧΗ
  f <- 1
  ΓΙΑ i ΑΠΟ 2 ΜΕΧΡΙ 5
    f <- f * i
  ΤΕΛΟΣ_ΕΠΑΝΑΛΗΨΗΣ
  ΓΡΑΨΕ f
ΤΕΛΟΣ_ΠΡΟΓΡΑΜΜΑΤΟΣ
`
	sink, err := runProgram(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sink.Lines[0] != "120" {
		t.Fatalf("expected 120, got %v", sink.Lines)
	}
}

func TestScenarioCountdownWhile(t *testing.T) {
	src := `
ΠΡΟΓΡΑΜΜΑ Π
ΜΕΤΑΒΛΗΤΕΣ
  ΑΚΕΡΑΙΕΣ: n
ΑΡΧΗ
  n <- 3
  ΟΣΟ n > 0 ΕΠΑΝΑΛΑΒΕ
    ΓΡΑΨΕ n
    n <- n - 1
  ΤΕΛΟΣ_ΕΠΑΝΑΛΗΨΗΣ
ΤΕΛΟΣ_ΠΡΟΓΡΑΜΜΑΤΟΣ
`
	sink, err := runProgram(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"3", "2", "1"}
	for i, w := range want {
		if sink.Lines[i] != w {
			t.Fatalf("line %d: expected %s, got %s", i, w, sink.Lines[i])
		}
	}
}

func TestScenarioRepeatUntilRunsBodyAtLeastOnce(t *testing.T) {
	src := `
ΠΡΟΓΡΑΜΜΑ Π
ΑΡΧΗ
  ΑΡΧΗ_ΕΠΑΝΑΛΗΨΗΣ
    ΓΡΑΨΕ "μία φορά"
  ΜΕΧΡΙΣ_ΟΤΟΥ ΑΛΗΘΗΣ
ΤΕΛΟΣ_ΠΡΟΓΡΑΜΜΑΤΟΣ
`
	sink, err := runProgram(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.Lines) != 1 {
		t.Fatalf("expected exactly 1 line, got %v", sink.Lines)
	}
}

func TestScenarioSelectMatchesListArm(t *testing.T) {
	src := `
ΠΡΟΓΡΑΜΜΑ Π
ΜΕΤΑΒΛΗΤΕΣ
  ΑΚΕΡΑΙΕΣ: x
ΑΡΧΗ
  x <- 3
  ΕΠΙΛΕΞΕ x
    ΠΕΡΙΠΤΩΣΗ 1:
      ΓΡΑΨΕ "ένα"
    ΠΕΡΙΠΤΩΣΗ 2, 3:
      ΓΡΑΨΕ "δύο ή τρία"
    ΑΛΛΙΩΣ:
      ΓΡΑΨΕ "άλλο"
  ΤΕΛΟΣ_ΕΠΙΛΟΓΩΝ
ΤΕΛΟΣ_ΠΡΟΓΡΑΜΜΑΤΟΣ
`
	sink, err := runProgram(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sink.Lines[0] != "δύο ή τρία" {
		t.Fatalf("expected the 2,3 arm to fire, got %v", sink.Lines)
	}
}

func TestScenarioRecursiveFibonacci(t *testing.T) {
	src := `
ΠΡΟΓΡΑΜΜΑ Π
ΑΡΧΗ
  ΓΡΑΨΕ ΦΙΜΠ(10)
ΤΕΛΟΣ_ΠΡΟΓΡΑΜΜΑΤΟΣ

ΣΥΝΑΡΤΗΣΗ ΦΙΜΠ(n: ΑΚΕΡΑΙΕΣ): ΑΚΕΡΑΙΕΣ
ΑΡΧΗ
  ΑΝ n < 2 ΤΟΤΕ
    ΕΠΙΣΤΡΕΨΕ n
  ΤΕΛΟΣ_ΑΝ
  ΕΠΙΣΤΡΕΨΕ ΦΙΜΠ(n - 1) + ΦΙΜΠ(n - 2)
ΤΕΛΟΣ_ΣΥΝΑΡΤΗΣΗΣ
`
	sink, err := runProgram(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sink.Lines[0] != "55" {
		t.Fatalf("expected fib(10) = 55, got %v", sink.Lines)
	}
}

func TestScenarioDivisionByZero(t *testing.T) {
	src := `
ΠΡΟΓΡΑΜΜΑ Π
ΜΕΤΑΒΛΗΤΕΣ
  ΑΚΕΡΑΙΕΣ: x
ΑΡΧΗ
  x <- 5 DIV 0
ΤΕΛΟΣ_ΠΡΟΓΡΑΜΜΑΤΟΣ
`
	_, err := runProgram(t, src, nil)
	if err == nil {
		t.Fatalf("expected a division-by-zero error")
	}
	diag := err.(*Diagnostic)
	if diag.Kind != KindRuntimeArithmetic {
		t.Fatalf("expected KindRuntimeArithmetic, got %v", diag.Kind)
	}
}

func TestScenarioArrayBoundsError(t *testing.T) {
	src := `
ΠΡΟΓΡΑΜΜΑ Π
ΜΕΤΑΒΛΗΤΕΣ
  ΑΚΕΡΑΙΕΣ: a[5]
ΑΡΧΗ
  a[6] <- 1
ΤΕΛΟΣ_ΠΡΟΓΡΑΜΜΑΤΟΣ
`
	_, err := runProgram(t, src, nil)
	if err == nil {
		t.Fatalf("expected a bounds error")
	}
	diag := err.(*Diagnostic)
	if diag.Kind != KindRuntimeBounds {
		t.Fatalf("expected KindRuntimeBounds, got %v", diag.Kind)
	}
}

func TestScenarioForLoopStepZeroIsAnError(t *testing.T) {
	src := `
ΠΡΟΓΡΑΜΜΑ Π
ΜΕΤΑΒΛΗΤΕΣ
  ΑΚΕΡΑΙΕΣ: i
ΑΡΧΗ
  ΓΙΑ i ΑΠΟ 1 ΜΕΧΡΙ 10 ΜΕ_ΒΗΜΑ 0
    ΓΡΑΨΕ i
  ΤΕΛΟΣ_ΕΠΑΝΑΛΗΨΗΣ
ΤΕΛΟΣ_ΠΡΟΓΡΑΜΜΑΤΟΣ
`
	_, err := runProgram(t, src, nil)
	if err == nil {
		t.Fatalf("expected an invalid-loop-step error")
	}
	diag := err.(*Diagnostic)
	if diag.Kind != KindRuntimeBounds {
		t.Fatalf("expected KindRuntimeBounds, got %v", diag.Kind)
	}
}

func TestScenarioForLoopDescendingStep(t *testing.T) {
	src := `
ΠΡΟΓΡΑΜΜΑ Π
ΜΕΤΑΒΛΗΤΕΣ
  ΑΚΕΡΑΙΕΣ: i
ΑΡΧΗ
  ΓΙΑ i ΑΠΟ 10 ΜΕΧΡΙ 1 ΜΕ_ΒΗΜΑ -1
    ΓΡΑΨΕ i
  ΤΕΛΟΣ_ΕΠΑΝΑΛΗΨΗΣ
ΤΕΛΟΣ_ΠΡΟΓΡΑΜΜΑΤΟΣ
`
	sink, err := runProgram(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.Lines) != 10 || sink.Lines[0] != "10" || sink.Lines[9] != "1" {
		t.Fatalf("expected 10 down to 1, got %v", sink.Lines)
	}
}

func TestProcedureArgumentsArePassedByValue(t *testing.T) {
	src := `
ΠΡΟΓΡΑΜΜΑ Π
ΜΕΤΑΒΛΗΤΕΣ
  ΑΚΕΡΑΙΕΣ: x
ΑΡΧΗ
  x <- 10
  ΚΑΛΕΣΕ ΑΥΞΗΣΕ(x)
  ΓΡΑΨΕ x
ΤΕΛΟΣ_ΠΡΟΓΡΑΜΜΑΤΟΣ

ΔΙΑΔΙΚΑΣΙΑ ΑΥΞΗΣΕ(n: ΑΚΕΡΑΙΕΣ)
ΑΡΧΗ
  n <- n + 1
  ΓΡΑΨΕ n
ΤΕΛΟΣ_ΔΙΑΔΙΚΑΣΙΑΣ
`
	// The formal parameter n is a distinct slot in the callee's frame
	// (§8: "the function frame shares no slots with the caller frame"),
	// so mutating it inside ΑΥΞΗΣΕ must not be visible to the caller's x.
	sink, err := runProgram(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sink.Lines[0] != "11" {
		t.Fatalf("expected the callee to see n=11, got %v", sink.Lines)
	}
	if sink.Lines[1] != "10" {
		t.Fatalf("expected the caller's x to remain 10, got %v", sink.Lines)
	}
}

func TestArrayArgumentToScalarParameterIsTypeMismatch(t *testing.T) {
	src := `
ΠΡΟΓΡΑΜΜΑ Π
ΜΕΤΑΒΛΗΤΕΣ
  ΑΚΕΡΑΙΕΣ: a[3]
ΑΡΧΗ
  ΚΑΛΕΣΕ ΔΕΙΞΕ(a)
ΤΕΛΟΣ_ΠΡΟΓΡΑΜΜΑΤΟΣ

ΔΙΑΔΙΚΑΣΙΑ ΔΕΙΞΕ(b: ΑΚΕΡΑΙΕΣ)
ΑΡΧΗ
  ΓΡΑΨΕ b
ΤΕΛΟΣ_ΔΙΑΔΙΚΑΣΙΑΣ
`
	// ΓΛΩΣΣΑ's formal parameters carry no array shape (§3: "ordered formal
	// parameters (name + type)"), so passing an array where a scalar is
	// expected is a coercion failure, not a supported call shape.
	_, err := runProgram(t, src, nil)
	if err == nil {
		t.Fatalf("expected a type-mismatch error binding an array to a scalar parameter")
	}
}

func TestScenarioWriteArrayFormatting(t *testing.T) {
	src := `
ΠΡΟΓΡΑΜΜΑ Π
ΜΕΤΑΒΛΗΤΕΣ
  ΑΚΕΡΑΙΕΣ: a[3]
ΑΡΧΗ
  a[1] <- 1
  a[2] <- 2
  a[3] <- 3
  ΓΡΑΨΕ a
ΤΕΛΟΣ_ΠΡΟΓΡΑΜΜΑΤΟΣ
`
	sink, err := runProgram(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sink.Lines[0] != "[1, 2, 3]" {
		t.Fatalf("expected [1, 2, 3], got %v", sink.Lines)
	}
}

func TestScenarioReadParsesDeclaredType(t *testing.T) {
	src := `
ΠΡΟΓΡΑΜΜΑ Π
ΜΕΤΑΒΛΗΤΕΣ
  ΑΚΕΡΑΙΕΣ: x
ΑΡΧΗ
  ΔΙΑΒΑΣΕ x
  ΓΡΑΨΕ x * 2
ΤΕΛΟΣ_ΠΡΟΓΡΑΜΜΑΤΟΣ
`
	sink, err := runProgram(t, src, []string{"21"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sink.Lines[0] != "42" {
		t.Fatalf("expected 42, got %v", sink.Lines)
	}
}

func TestScenarioRealFormattingAlwaysShowsFractionalDigit(t *testing.T) {
	src := `
ΠΡΟΓΡΑΜΜΑ Π
ΜΕΤΑΒΛΗΤΕΣ
  ΠΡΑΓΜΑΤΙΚΕΣ: x
ΑΡΧΗ
  x <- 4.0
  ΓΡΑΨΕ x
ΤΕΛΟΣ_ΠΡΟΓΡΑΜΜΑΤΟΣ
`
	sink, err := runProgram(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sink.Lines[0] != "4.0" {
		t.Fatalf("expected 4.0 (fractional digit guaranteed), got %v", sink.Lines)
	}
}

func TestScenarioProcedureReadsGlobalVariableWithoutParameter(t *testing.T) {
	src := `
ΠΡΟΓΡΑΜΜΑ Π
ΜΕΤΑΒΛΗΤΕΣ
  ΑΚΕΡΑΙΕΣ: μετρητής
ΑΡΧΗ
  μετρητής <- 7
  ΚΑΛΕΣΕ ΔΕΙΞΕ_ΜΕΤΡΗΤΗ()
ΤΕΛΟΣ_ΠΡΟΓΡΑΜΜΑΤΟΣ

ΔΙΑΔΙΚΑΣΙΑ ΔΕΙΞΕ_ΜΕΤΡΗΤΗ()
ΑΡΧΗ
  ΓΡΑΨΕ μετρητής
ΤΕΛΟΣ_ΔΙΑΔΙΚΑΣΙΑΣ
`
	sink, err := runProgram(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.Lines) != 1 || sink.Lines[0] != "7" {
		t.Fatalf("expected [\"7\"], got %v", sink.Lines)
	}
}

func TestScenarioFunctionReadsGlobalConstant(t *testing.T) {
	src := `
ΠΡΟΓΡΑΜΜΑ Π
ΣΤΑΘΕΡΕΣ
  ΌΡΙΟ = 100
ΑΡΧΗ
  ΓΡΑΨΕ ΠΡΟΣΘΕΣΕ_ΌΡΙΟ(5)
ΤΕΛΟΣ_ΠΡΟΓΡΑΜΜΑΤΟΣ

ΣΥΝΑΡΤΗΣΗ ΠΡΟΣΘΕΣΕ_ΌΡΙΟ(x: ΑΚΕΡΑΙΕΣ): ΑΚΕΡΑΙΕΣ
ΑΡΧΗ
  ΕΠΙΣΤΡΕΨΕ x + ΌΡΙΟ
ΤΕΛΟΣ_ΣΥΝΑΡΤΗΣΗΣ
`
	sink, err := runProgram(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.Lines) != 1 || sink.Lines[0] != "105" {
		t.Fatalf("expected [\"105\"], got %v", sink.Lines)
	}
}

func TestScenarioSubprogramLocalConstantIsUsable(t *testing.T) {
	src := `
ΠΡΟΓΡΑΜΜΑ Π
ΑΡΧΗ
  ΓΡΑΨΕ ΤΕΤΡΑΓΩΝΟ_ΕΜΒΑΔΟΝ(3)
ΤΕΛΟΣ_ΠΡΟΓΡΑΜΜΑΤΟΣ

ΣΥΝΑΡΤΗΣΗ ΤΕΤΡΑΓΩΝΟ_ΕΜΒΑΔΟΝ(πλευρά: ΑΚΕΡΑΙΕΣ): ΑΚΕΡΑΙΕΣ
ΣΤΑΘΕΡΕΣ
  ΔΥΝΑΜΗ = 2
ΑΡΧΗ
  ΕΠΙΣΤΡΕΨΕ πλευρά * πλευρά * ΔΥΝΑΜΗ DIV ΔΥΝΑΜΗ
ΤΕΛΟΣ_ΣΥΝΑΡΤΗΣΗΣ
`
	sink, err := runProgram(t, src, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.Lines) != 1 || sink.Lines[0] != "9" {
		t.Fatalf("expected [\"9\"], got %v", sink.Lines)
	}
}

func TestDebuggerStopSignalUnwindsCleanly(t *testing.T) {
	src := `
ΠΡΟΓΡΑΜΜΑ Π
ΜΕΤΑΒΛΗΤΕΣ
  ΑΚΕΡΑΙΕΣ: i
ΑΡΧΗ
  ΓΙΑ i ΑΠΟ 1 ΜΕΧΡΙ 1000
    ΓΡΑΨΕ i
  ΤΕΛΟΣ_ΕΠΑΝΑΛΗΨΗΣ
ΤΕΛΟΣ_ΠΡΟΓΡΑΜΜΑΤΟΣ
`
	prog := mustParse(t, src)
	sink := &SliceSink{}
	dbg := &stopAfterN{n: 3}
	err := New().Run(prog, sink, NewSliceSource(nil), dbg)
	if err == nil {
		t.Fatalf("expected a stop-requested error")
	}
	diag := err.(*Diagnostic)
	if diag.Kind != KindControl {
		t.Fatalf("expected KindControl, got %v", diag.Kind)
	}
	if len(sink.Lines) != 3 {
		t.Fatalf("expected exactly 3 lines before the stop, got %d", len(sink.Lines))
	}
}

type stopAfterN struct {
	n     int
	count int
}

func (d *stopAfterN) Before(stmt ast.Statement, snap Snapshot) error { return nil }

func (d *stopAfterN) After(stmt ast.Statement, snap Snapshot) error {
	d.count++
	if d.count >= d.n {
		return ErrStopRequested
	}
	return nil
}
