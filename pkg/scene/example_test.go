package scene_test

import (
	"fmt"

	"github.com/matzehuels/flowgraph/pkg/layout"
	"github.com/matzehuels/flowgraph/pkg/scene"
	"github.com/matzehuels/flowgraph/pkg/theme"
	"github.com/matzehuels/flowgraph/pkg/workflow"
)

func ExampleBuild() {
	g, _ := layout.Compute([]workflow.Node{
		{ID: "41", Name: "extract_customer_records", State: workflow.StateCompleted},
		{ID: "42", Name: "load", State: workflow.StateRetryable, Deps: []string{"extract_customer_records"}},
	})
	s := scene.Build(g, theme.Light(), "/workflows/9")

	for _, b := range s.Nodes {
		fmt.Printf("%s [%s] fill=%s → %s\n", b.Label.Content, b.Status.Content, b.Fill, b.Href)
	}
	fmt.Println(s.Edges[0].D)
	// Output:
	// extract_customer_… [completed] fill=#dcfce7 → /workflows/9/41
	// load [retryable] fill=#ffedd5 → /workflows/9/42
	// M 200 64 L 260 64
}

func ExampleTruncate() {
	fmt.Println(scene.Truncate("nightly_backup", 18))
	fmt.Println(scene.Truncate("nightly_backup_of_everything", 18))
	// Output:
	// nightly_backup
	// nightly_backup_of…
}
