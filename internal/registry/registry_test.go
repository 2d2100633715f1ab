package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dg-devloper/nexusagent-v2-sub002/internal/manifest"
)

func sampleRegistry() *Registry {
	return NewRegistry(
		[]NodeDescriptor{
			{Name: "chatOpenAI", Label: "ChatOpenAI", Category: "Chat Models", CredentialNames: []string{"openAIApi"}},
			{Name: "calculator", Label: "Calculator", Category: "Tools"},
			{Name: "serpAPI", Label: "Serp API", Category: "Tools", Author: "bob", Inputs: []manifest.InputParam{{Name: "q"}}},
		},
		[]CredentialDescriptor{
			{Name: "openAIApi", Icon: "/icons/openai.svg"},
		},
	)
}

func TestRegistryLookups(t *testing.T) {
	r := sampleRegistry()

	node, ok := r.Node("chatOpenAI")
	require.True(t, ok)
	assert.Equal(t, "ChatOpenAI", node.Label)
	assert.False(t, node.Community())

	_, ok = r.Node("unknownNode")
	assert.False(t, ok)
	assert.True(t, r.HasNode("calculator"))
	assert.False(t, r.HasNode("unknownNode"))

	cred, ok := r.Credential("openAIApi")
	require.True(t, ok)
	assert.Equal(t, "/icons/openai.svg", cred.Icon)

	_, ok = r.Credential("missingApi")
	assert.False(t, ok)

	nodes, creds := r.Len()
	assert.Equal(t, 3, nodes)
	assert.Equal(t, 1, creds)
	assert.Equal(t, []string{"calculator", "chatOpenAI", "serpAPI"}, r.NodeNames())
	assert.Equal(t, []string{"openAIApi"}, r.CredentialNames())
}

func TestRegistryReturnsCopies(t *testing.T) {
	r := sampleRegistry()

	node, _ := r.Node("chatOpenAI")
	node.CredentialNames[0] = "mutated"
	node.Label = "mutated"

	again, _ := r.Node("chatOpenAI")
	assert.Equal(t, []string{"openAIApi"}, again.CredentialNames)
	assert.Equal(t, "ChatOpenAI", again.Label)

	all := r.Nodes()
	all[2].Inputs[0].Name = "mutated"
	serp, _ := r.Node("serpAPI")
	assert.Equal(t, "q", serp.Inputs[0].Name)
}

func TestRegistryNodesByCategory(t *testing.T) {
	groups := sampleRegistry().NodesByCategory()

	require.Len(t, groups, 2)
	require.Len(t, groups["Tools"], 2)
	assert.Equal(t, "Calculator", groups["Tools"][0].Label)
	assert.Equal(t, "Serp API", groups["Tools"][1].Label)
	assert.True(t, groups["Tools"][1].Community())
}
