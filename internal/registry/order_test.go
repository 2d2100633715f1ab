package registry

import (
	"context"
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/dg-devloper/nexusagent-v2-sub002/internal/manifest"
	"github.com/dg-devloper/nexusagent-v2-sub002/internal/policy"
)

// TestBuildEntriesOrderIndependent checks that the registry does not depend
// on the order plugins are discovered in, including name collisions.
func TestBuildEntriesOrderIndependent(t *testing.T) {
	labels := []string{"Alpha", "Beta", "Gamma"}
	categories := []string{"Tools", "Chat Models", "Analytic"}
	versions := []string{"1.0.0", "1.1.0", "2.0.0"}
	creds := []string{"alphaApi", "betaApi"}

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(t, "n")

		var nodeEntries []Entry
		for i := 0; i < n; i++ {
			label := rapid.SampledFrom(labels).Draw(t, "label")
			m := nodeManifest("node"+label, label, rapid.SampledFrom(categories).Draw(t, "category"))
			m.Version = rapid.SampledFrom(versions).Draw(t, "version")
			m.Icon = "icon.svg"
			m.Author = rapid.SampledFrom([]string{"", "bob"}).Draw(t, "author")
			m.Description = fmt.Sprintf("variant %d", i)
			if rapid.Bool().Draw(t, "hasCredential") {
				m.Credential = &manifest.CredentialRef{CredentialNames: []string{rapid.SampledFrom(creds).Draw(t, "cred")}}
			}
			nodeEntries = append(nodeEntries, memEntry(fmt.Sprintf("/plugins/%02d/%s.yaml", i, label), m))
		}
		var credEntries []Entry
		for i, c := range creds {
			credEntries = append(credEntries, memEntry(fmt.Sprintf("/creds/%d.credential.yaml", i), credentialManifest(c)))
		}

		perm := rapid.Permutation(nodeEntries).Draw(t, "perm")

		opts := Options{
			Policy:      policy.New(policy.DefaultExcludedCategories, rapid.Bool().Draw(t, "community"), policy.NewAllowList("Alpha", "Beta")),
			Concurrency: rapid.IntRange(1, 4).Draw(t, "concurrency"),
			Logger:      quietLogger(),
		}

		want, err := BuildEntries(context.Background(), nodeEntries, credEntries, opts)
		if err != nil {
			t.Fatal(err)
		}
		got, err := BuildEntries(context.Background(), perm, credEntries, opts)
		if err != nil {
			t.Fatal(err)
		}

		wantNodes, gotNodes := want.Nodes(), got.Nodes()
		if len(wantNodes) != len(gotNodes) {
			t.Fatalf("node count %d != %d", len(gotNodes), len(wantNodes))
		}
		for i := range wantNodes {
			if wantNodes[i].Name != gotNodes[i].Name || wantNodes[i].FilePath != gotNodes[i].FilePath {
				t.Fatalf("node %d: got %s from %s, want %s from %s",
					i, gotNodes[i].Name, gotNodes[i].FilePath, wantNodes[i].Name, wantNodes[i].FilePath)
			}
			if wantNodes[i].Category == "Analytic" {
				t.Fatalf("excluded category registered: %s", wantNodes[i].Name)
			}
		}
		for _, c := range creds {
			w, _ := want.Credential(c)
			g, _ := got.Credential(c)
			if w.Icon != g.Icon {
				t.Fatalf("credential %s icon %q != %q", c, g.Icon, w.Icon)
			}
		}
	})
}
