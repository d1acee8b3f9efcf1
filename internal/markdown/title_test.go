package markdown

import "testing"

func TestTitle(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		filename string
		want     string
	}{
		{
			name:     "first h1 wins",
			content:  "intro text\n# Main Title\n## Sub\n",
			filename: "doc.md",
			want:     "Main Title",
		},
		{
			name:     "h2 fallback when no h1",
			content:  "## Only Sub\ntext\n",
			filename: "doc.md",
			want:     "Only Sub",
		},
		{
			name:     "h1 beats earlier h2",
			content:  "## Early Sub\n# Late Main\n",
			filename: "doc.md",
			want:     "Late Main",
		},
		{
			name:     "filename fallback",
			content:  "no headings here\n",
			filename: "meeting-notes.md",
			want:     "Meeting Notes",
		},
		{
			name:     "empty file uses filename",
			content:  "",
			filename: "project_plan.md",
			want:     "Project Plan",
		},
		{
			name:     "inline formatting stripped",
			content:  "# Some *emphasized* `code` title\n",
			filename: "doc.md",
			want:     "Some emphasized code title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Title([]byte(tt.content), tt.filename)
			if got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}
