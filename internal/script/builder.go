// Package script accumulates the idempotent shell statements that make up
// one deployment pass for one backend. Nothing here executes anything; the
// accumulated text is handed to an executor collaborator.
package script

import (
	"fmt"
	"strings"
)

// Builder collects shell statements for a deployment script.
//
// Statements are written to be independently idempotent: re-applying the
// same resource state must produce zero observable changes, and "updated"
// flags must only be set on genuine content difference. Builder offers
// helpers that emit the guarded statement shapes used across backends.
type Builder struct {
	lines []string
}

// New returns an empty Builder.
func New() *Builder { return &Builder{} }

// Append adds raw statement text.
func (b *Builder) Append(text string) {
	b.lines = append(b.lines, text)
}

// Appendf adds formatted statement text.
func (b *Builder) Appendf(format string, args ...any) {
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

// WriteChanged emits a statement that writes content to path only when it
// differs from what is currently deployed, ignoring comment-only lines, and
// sets updatedVar=1 on a genuine difference.
func (b *Builder) WriteChanged(comment, path, content, updatedVar string) {
	b.Appendf(`
# %s
read -r -d '' conf << 'EOF' || true
%s
EOF
{
    echo -e "${conf}" | diff -N -I'^\s*#' %s -
} || {
    echo -e "${conf}" > %s
    %s=1
}`, comment, strings.TrimRight(content, "\n"), path, path, updatedVar)
}

// RunIfMissing emits command guarded on path not existing, setting
// updatedVar=1 when the command runs. Used to enable an artifact only when
// it is currently disabled.
func (b *Builder) RunIfMissing(comment, path, command, updatedVar string) {
	b.Appendf(`
# %s
if [[ ! -f %s ]]; then
    %s
    %s=1
fi`, comment, path, command, updatedVar)
}

// RunIfPresent emits command guarded on path existing, setting updatedVar=1
// when the command runs. Used to disable an artifact only when it is
// currently enabled.
func (b *Builder) RunIfPresent(comment, path, command, updatedVar string) {
	b.Appendf(`
# %s
if [[ -f %s ]]; then
    %s
    %s=1
fi`, comment, path, command, updatedVar)
}

// Mark returns a checkpoint of the current script length.
func (b *Builder) Mark() int { return len(b.lines) }

// Reset discards every statement appended after the checkpoint. A resource
// whose rendering fails is rolled back to its checkpoint so its partial
// contribution never reaches the executor.
func (b *Builder) Reset(mark int) {
	if mark >= 0 && mark <= len(b.lines) {
		b.lines = b.lines[:mark]
	}
}

// Len returns the number of appended statements.
func (b *Builder) Len() int { return len(b.lines) }

// String returns the accumulated script text.
func (b *Builder) String() string {
	return strings.Join(b.lines, "\n")
}
