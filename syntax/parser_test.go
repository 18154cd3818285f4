package syntax

import (
	"context"
	"reflect"
	"testing"

	"github.com/iw2rmb/filigree/buffer"
)

func TestParser_Parse_BuildsTree(t *testing.T) {
	p, _ := parseSource(t, "go", "package main\n")
	root := p.Root()
	if root == nil {
		t.Fatal("Root() = nil after Parse")
	}
	if got, want := root.Type(), "source_file"; got != want {
		t.Fatalf("root kind = %q, want %q", got, want)
	}
	if p.Degraded() {
		t.Fatal("Degraded() = true for valid input")
	}
}

func TestParser_Root_NilBeforeParse(t *testing.T) {
	lang, err := Lookup("go")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	p := NewParser(lang)
	defer p.Close()
	if p.Root() != nil {
		t.Fatal("Root() != nil before first Parse")
	}
	if p.Degraded() {
		t.Fatal("Degraded() = true before first Parse")
	}
}

func TestParser_Update_BeforeParseReportsFullDamage(t *testing.T) {
	lang, err := Lookup("go")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	p := NewParser(lang)
	defer p.Close()

	b := buffer.New("package main\n", buffer.Options{})
	e, _, err := b.Insert(b.Len(), "\nfunc main() {}\n")
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	damage, err := p.Update(context.Background(), e, []byte(b.Text()))
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if want := (buffer.Range{Start: 0, End: b.Len()}); damage != want {
		t.Fatalf("damage = %v, want %v", damage, want)
	}
}

func TestParser_Update_DamageStaysOnEditedLine(t *testing.T) {
	src := "fn main() { println!(); }\nfn other() {}\n"
	p, _ := parseSource(t, "rust", src)

	b := buffer.New(src, buffer.Options{})
	closeBrace := len("fn main() { println!(); }\n") + len("fn other() {")
	e, _, err := b.Insert(closeBrace, "x")
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	damage, err := p.Update(context.Background(), e, []byte(b.Text()))
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	secondLine := len("fn main() { println!(); }\n")
	if want := (buffer.Range{Start: secondLine, End: b.Len()}); damage != want {
		t.Fatalf("damage = %v, want %v (second line only)", damage, want)
	}
	if p.Degraded() {
		t.Fatal("Degraded() = true after clean edit")
	}
}

func TestParser_Update_UnterminatedRawStringWidensDamage(t *testing.T) {
	src := "package main\n\nvar a = 1\nvar b = 2\n"
	p, _ := parseSource(t, "go", src)

	b := buffer.New(src, buffer.Options{})
	one := len("package main\n\nvar a = ")
	e, _, err := b.Insert(one, "`")
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	damage, err := p.Update(context.Background(), e, []byte(b.Text()))
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if !p.Degraded() {
		t.Fatal("Degraded() = false with an unterminated raw string")
	}
	if damage.Start > one {
		t.Fatalf("damage.Start = %d, want <= %d", damage.Start, one)
	}
	text := b.Text()
	if damage.Start != 0 && text[damage.Start-1] != '\n' {
		t.Fatalf("damage.Start = %d does not sit on a line boundary", damage.Start)
	}
	if got, want := damage.End, b.Len(); got != want {
		t.Fatalf("damage.End = %d, want %d (document end)", got, want)
	}
}

func TestParser_Update_DegradedClearsAfterFix(t *testing.T) {
	src := "package main\n\nvar a = 1\n"
	p, _ := parseSource(t, "go", src)

	b := buffer.New(src, buffer.Options{})
	one := len("package main\n\nvar a = ")
	e, _, err := b.Insert(one, "`")
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if _, err := p.Update(context.Background(), e, []byte(b.Text())); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if !p.Degraded() {
		t.Fatal("Degraded() = false with a parse error present")
	}

	e, _, err = b.Delete(one, one+1)
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := p.Update(context.Background(), e, []byte(b.Text())); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if p.Degraded() {
		t.Fatal("Degraded() = true after the error was removed")
	}
}

// Typing a call into an empty body character by character must leave the
// incrementally maintained tree highlighting identically to a fresh
// parse of the final text.
func TestParser_Update_MatchesFreshParse(t *testing.T) {
	src := "fn main() {}\n"
	p, lang := parseSource(t, "rust", src)

	b := buffer.New(src, buffer.Options{})
	body := len("fn main() {")
	for i, r := range "println!();" {
		e, _, err := b.Insert(body+i, string(r))
		if err != nil {
			t.Fatalf("Insert %d error: %v", i, err)
		}
		if _, err := p.Update(context.Background(), e, []byte(b.Text())); err != nil {
			t.Fatalf("Update %d error: %v", i, err)
		}
	}
	if got, want := b.Text(), "fn main() {println!();}\n"; got != want {
		t.Fatalf("text = %q, want %q", got, want)
	}

	fresh, _ := parseSource(t, "rust", b.Text())
	got := Highlight(p.Root(), 0, b.Len(), lang)
	want := Highlight(fresh.Root(), 0, b.Len(), lang)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("incremental spans =\n%v\nfresh parse spans\n%v", got, want)
	}
}
