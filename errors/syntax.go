package errors

import (
	"fmt"

	"github.com/depc-lang/depc/types"
)

type ExpectedKindGotKind struct {
	Expected types.TokenKind
	Got      types.TokenKind
	Location types.Span
}

func (e ExpectedKindGotKind) Error() string {
	return fmt.Sprintf("got a %s, expected a %s at %s", e.Got, e.Expected, e.Location)
}

type ExpectedOneOfKindGotKind struct {
	Expected []types.TokenKind
	Got      types.TokenKind
	Location types.Span
}

func (e ExpectedOneOfKindGotKind) Error() string {
	return fmt.Sprintf("got a %s, expected one of %s at %s", e.Got, e.Expected, e.Location)
}

type UnexpectedRune struct {
	Rune     rune
	Location types.Position
}

func (e UnexpectedRune) Error() string {
	return fmt.Sprintf("unexpected character %q at %s", e.Rune, e.Location)
}
