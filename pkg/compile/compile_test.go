package compile

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/boxvm/boxvm/pkg/vm"
)

// runSource compiles and executes a program, returning its output and
// the conversion events it emitted.
func runSource(t *testing.T, src string) (string, []vm.Event) {
	t.Helper()
	prog, err := CompileSource("test", src)
	if err != nil {
		t.Fatalf("CompileSource() error: %v", err)
	}
	var out bytes.Buffer
	sink := &vm.CollectSink{}
	machine := vm.NewVM(prog)
	machine.Stdout = &out
	machine.Sink = sink
	if err := machine.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	return out.String(), sink.Events
}

// runtimeError compiles a program that must compile cleanly and returns
// the error its execution produces.
func runtimeError(t *testing.T, src string) error {
	t.Helper()
	prog, err := CompileSource("test", src)
	if err != nil {
		t.Fatalf("CompileSource() error: %v", err)
	}
	machine := vm.NewVM(prog)
	machine.Stdout = &bytes.Buffer{}
	err = machine.Execute()
	if err == nil {
		t.Fatal("Execute() succeeded, want runtime error")
	}
	return err
}

func inMain(body string) string {
	return "static void main() {\n" + body + "\n}"
}

func eventStrings(events []vm.Event) []string {
	ss := make([]string, len(events))
	for i, e := range events {
		ss[i] = e.String()
	}
	return ss
}

func checkEvents(t *testing.T, events []vm.Event, want []string) {
	t.Helper()
	got := eventStrings(events)
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d:\ngot  %q\nwant %q", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d:\ngot  %q\nwant %q", i, got[i], want[i])
		}
	}
}

func TestAutoboxAssignment(t *testing.T) {
	out, events := runSource(t, inMain(`
Integer iOb = 100;
int i = iOb;
System.out.println("iOb value = " + iOb);
System.out.println("i value = " + i);
`))
	want := "iOb value = 100\ni value = 100\n"
	if out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
	checkEvents(t, events, []string{
		"box int -> Integer at assignment site (value 100)",
		"unbox Integer -> int at assignment site (value 100)",
	})
}

func TestWideningAssignment(t *testing.T) {
	out, events := runSource(t, inMain(`
long l = 10;
double d = l;
System.out.println(d);
`))
	if want := "10.0\n"; out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
	checkEvents(t, events, []string{
		"widen int -> long at assignment site (value 10)",
		"widen long -> double at assignment site (value 10.0)",
	})
}

func TestConstantNarrowing(t *testing.T) {
	out, events := runSource(t, inMain(`
Byte bOb = 5;
byte b = 100;
char c = 65;
System.out.println(bOb);
System.out.println(b);
System.out.println(c);
`))
	if want := "5\n100\nA\n"; out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
	checkEvents(t, events, []string{
		"narrow int -> byte at assignment site (value 5)",
		"box byte -> Byte at assignment site (value 5)",
		"narrow int -> byte at assignment site (value 100)",
		"narrow int -> char at assignment site (value A)",
	})
}

func TestMethodBoundary(t *testing.T) {
	out, events := runSource(t, `
static int twice(Integer n) {
    return n * 2;
}

static void main() {
    Integer res = twice(7);
    System.out.println(res);
}
`)
	if want := "14\n"; out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
	checkEvents(t, events, []string{
		"box int -> Integer at argument site (value 7)",
		"unbox Integer -> int at expression site (value 7)",
		"box int -> Integer at assignment site (value 14)",
	})
}

func TestReturnSiteConversion(t *testing.T) {
	out, events := runSource(t, `
static Integer wrap(int n) {
    return n;
}

static void main() {
    System.out.println(wrap(3));
}
`)
	if want := "3\n"; out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
	checkEvents(t, events, []string{
		"box int -> Integer at return site (value 3)",
	})
}

func TestReturnSiteConstantNarrowing(t *testing.T) {
	out, events := runSource(t, `
static byte low() {
    return 100;
}

static void main() {
    System.out.println(low());
}
`)
	if want := "100\n"; out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
	checkEvents(t, events, []string{
		"narrow int -> byte at return site (value 100)",
	})
}

func TestMixedArithmetic(t *testing.T) {
	out, events := runSource(t, inMain(`
double d = 100 + 97.97;
System.out.println(d);
`))
	if want := "197.97\n"; out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
	checkEvents(t, events, []string{
		"widen int -> double at expression site (value 100.0)",
	})
}

func TestWrapperIncrement(t *testing.T) {
	out, events := runSource(t, inMain(`
Integer iOb = 100;
iOb++;
System.out.println(iOb);
`))
	if want := "101\n"; out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
	checkEvents(t, events, []string{
		"box int -> Integer at assignment site (value 100)",
		"unbox Integer -> int at increment site (value 100)",
		"box int -> Integer at increment site (value 101)",
	})
}

func TestByteIncrementNarrows(t *testing.T) {
	out, events := runSource(t, inMain(`
byte b = 127;
b++;
System.out.println(b);
`))
	if want := "-128\n"; out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
	checkEvents(t, events, []string{
		"narrow int -> byte at assignment site (value 127)",
		"widen byte -> int at increment site (value 127)",
		"narrow int -> byte at increment site (value -128)",
	})
}

func TestSwitchSelectorUnboxes(t *testing.T) {
	out, events := runSource(t, inMain(`
Integer sel = 2;
switch (sel) {
case 1:
    System.out.println("one");
    break;
case 2:
    System.out.println("two");
    break;
default:
    System.out.println("other");
}
`))
	if want := "two\n"; out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
	checkEvents(t, events, []string{
		"box int -> Integer at assignment site (value 2)",
		"unbox Integer -> int at switch site (value 2)",
	})
}

func TestSwitchFallthrough(t *testing.T) {
	out, _ := runSource(t, inMain(`
int k = 1;
switch (k) {
case 1:
case 2:
    System.out.println("small");
    break;
default:
    System.out.println("other");
}
`))
	if want := "small\n"; out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
}

func TestSparseSwitch(t *testing.T) {
	out, _ := runSource(t, inMain(`
int k = 1000;
switch (k) {
case 1:
    System.out.println("one");
    break;
case 1000:
    System.out.println("grand");
    break;
}
`))
	if want := "grand\n"; out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
}

func TestBooleanCondition(t *testing.T) {
	out, events := runSource(t, inMain(`
Boolean flag = true;
if (flag) {
    System.out.println("yes");
} else {
    System.out.println("no");
}
`))
	if want := "yes\n"; out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
	checkEvents(t, events, []string{
		"box boolean -> Boolean at assignment site (value true)",
		"unbox Boolean -> boolean at condition site (value true)",
	})
}

func TestIdentityCache(t *testing.T) {
	out, _ := runSource(t, inMain(`
Integer a = 100;
Integer b = 100;
Integer c = 200;
Integer d = 200;
System.out.println(a == b);
System.out.println(c == d);
`))
	if want := "true\nfalse\n"; out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
}

func TestWrapperAgainstPrimitiveCompares(t *testing.T) {
	out, events := runSource(t, inMain(`
Integer a = 200;
System.out.println(a == 200);
`))
	if want := "true\n"; out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
	checkEvents(t, events, []string{
		"box int -> Integer at assignment site (value 200)",
		"unbox Integer -> int at expression site (value 200)",
	})
}

func TestEqualsAutoboxesArgument(t *testing.T) {
	out, events := runSource(t, inMain(`
Integer a = 5;
System.out.println(a.equals(5));
`))
	if want := "true\n"; out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
	checkEvents(t, events, []string{
		"box int -> Integer at assignment site (value 5)",
		"box int -> Integer at argument site (value 5)",
	})
}

func TestConcatDoesNotUnbox(t *testing.T) {
	out, events := runSource(t, inMain(`
Double dOb = 1.5;
String s = "v=" + dOb;
System.out.println(s);
`))
	if want := "v=1.5\n"; out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
	checkEvents(t, events, []string{
		"box double -> Double at assignment site (value 1.5)",
	})
}

func TestExplicitCallsEmitNoEvents(t *testing.T) {
	out, events := runSource(t, inMain(`
Integer iOb = Integer.valueOf(100);
int i = iOb.intValue();
System.out.println(i);
`))
	if want := "100\n"; out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
	if len(events) != 0 {
		t.Errorf("explicit conversions emitted events: %q", eventStrings(events))
	}
}

func TestValueOfWidensArgument(t *testing.T) {
	out, events := runSource(t, inMain(`
Long lOb = Long.valueOf(5);
System.out.println(lOb);
`))
	if want := "5\n"; out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
	checkEvents(t, events, []string{
		"widen int -> long at argument site (value 5)",
	})
}

func TestPrintWithoutNewline(t *testing.T) {
	out, _ := runSource(t, inMain(`
System.out.print("a");
System.out.print("b");
System.out.println();
`))
	if want := "ab\n"; out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
}

func TestNegativeLiteralBounds(t *testing.T) {
	out, _ := runSource(t, inMain(`
int min = -2147483648;
System.out.println(min);
`))
	if want := "-2147483648\n"; out != want {
		t.Errorf("got  %q\nwant %q", out, want)
	}
}

func TestUnboxNullThrows(t *testing.T) {
	err := runtimeError(t, inMain(`
Integer iOb = null;
int i = iOb;
System.out.println(i);
`))
	var je *vm.JavaException
	if !errors.As(err, &je) {
		t.Fatalf("error is %T, want *vm.JavaException", err)
	}
	if je.Class != vm.ClassNullPointerException {
		t.Errorf("class = %s, want %s", je.Class, vm.ClassNullPointerException)
	}
}

func TestDivisionByZeroThrows(t *testing.T) {
	err := runtimeError(t, inMain(`
int a = 10;
int b = 0;
System.out.println(a / b);
`))
	var je *vm.JavaException
	if !errors.As(err, &je) {
		t.Fatalf("error is %T, want *vm.JavaException", err)
	}
	if je.Class != vm.ClassArithmeticException || je.Message != "/ by zero" {
		t.Errorf("got %s: %s, want %s: / by zero", je.Class, je.Message, vm.ClassArithmeticException)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			"lossy long to int",
			inMain("int i = 5L;"),
			"incompatible types: possible lossy conversion from long to int",
		},
		{
			"lossy int to byte",
			inMain("byte b = 500;"),
			"incompatible types: possible lossy conversion from int to byte",
		},
		{
			"no boxing with widening",
			inMain("Long l = 5;"),
			"incompatible types: int cannot be converted to Long",
		},
		{
			"no unboxing with narrowing",
			inMain("Integer iOb = 5;\nbyte b = iOb;"),
			"incompatible types: Integer cannot be converted to byte",
		},
		{
			"wrapper classes do not interconvert",
			inMain("Integer iOb = 5;\nLong l = iOb;"),
			"incompatible types: Integer cannot be converted to Long",
		},
		{
			"null into primitive",
			inMain("int i = null;"),
			"incompatible types: <null> cannot be converted to int",
		},
		{
			"no constant narrowing for arguments",
			"static void f(byte b) {\nSystem.out.println(b);\n}\n" + inMain("f(5);"),
			"incompatible types: possible lossy conversion from int to byte",
		},
		{
			"no constant narrowing for wrapper arguments",
			"static void f(Byte b) {\nSystem.out.println(b);\n}\n" + inMain("f(5);"),
			"incompatible types: int cannot be converted to Byte",
		},
		{
			"undefined variable",
			inMain("int i = x;"),
			"cannot find symbol: variable x",
		},
		{
			"undefined method",
			inMain("foo();"),
			"cannot find symbol: method foo",
		},
		{
			"condition requires boolean",
			inMain("if (1) {\nSystem.out.println(1);\n}"),
			"incompatible types: int cannot be converted to boolean",
		},
		{
			"long switch selector",
			inMain("long sel = 1;\nswitch (sel) {\ndefault:\nbreak;\n}"),
			"incompatible types: long cannot be converted to int",
		},
		{
			"case label must be constant",
			inMain("int k = 1;\nint x = 2;\nswitch (k) {\ncase x:\nbreak;\n}"),
			"constant expression required",
		},
		{
			"duplicate case label",
			inMain("int k = 1;\nswitch (k) {\ncase 1:\nbreak;\ncase 1:\nbreak;\n}"),
			"duplicate case label",
		},
		{
			"incomparable wrappers",
			inMain("Integer a = 1;\nLong b = 1L;\nSystem.out.println(a == b);"),
			"incomparable types: Integer and Long",
		},
		{
			"duplicate variable",
			inMain("int i = 1;\nint i = 2;"),
			"variable i is already defined in method main",
		},
		{
			"increment on boolean",
			inMain("boolean f = true;\nf++;"),
			"bad operand type boolean for unary operator '++'",
		},
		{
			"arithmetic on boolean",
			inMain("boolean f = true;\nint x = f + 1;"),
			"bad operand types for binary operator '+': boolean and int",
		},
		{
			"unexpected return value",
			inMain("return 5;"),
			"incompatible types: unexpected return value",
		},
		{
			"missing return statement",
			"static int f() {\nint x = 1;\n}\n" + inMain("System.out.println(f());"),
			"missing return statement in method f",
		},
		{
			"integer literal out of range",
			inMain("int i = 2147483648;"),
			"integer number too large",
		},
		{
			"void in expression",
			inMain("int x = println(1);"),
			"'void' type not allowed here",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompileSource("test", tt.src)
			if err == nil {
				t.Fatalf("CompileSource() succeeded, want error %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want containing %q", err, tt.wantErr)
			}
		})
	}
}
