package test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/promptforge/promptforge/pkg/config"
	"github.com/promptforge/promptforge/pkg/interview"
	"github.com/promptforge/promptforge/pkg/scaffold"
)

// replayPrompter feeds a fixed interview transcript.
type replayPrompter struct {
	inputs   []string
	selects  []string
	multis   [][]string
	confirms []bool
}

func (r *replayPrompter) Input(string) (string, error) {
	answer := r.inputs[0]
	r.inputs = r.inputs[1:]
	return answer, nil
}

func (r *replayPrompter) Select(string, []string) (string, error) {
	answer := r.selects[0]
	r.selects = r.selects[1:]
	return answer, nil
}

func (r *replayPrompter) MultiSelect(string, []string) ([]string, error) {
	answer := r.multis[0]
	r.multis = r.multis[1:]
	return answer, nil
}

func (r *replayPrompter) Confirm(string) (bool, error) {
	answer := r.confirms[0]
	r.confirms = r.confirms[1:]
	return answer, nil
}

var _ = Describe("Project Scaffolding", func() {
	It("should generate a working project from a minimal interview", func() {
		By("running the interview with auth and deployment declined")
		prompter := &replayPrompter{
			inputs:   []string{"demo", "a demo server"},
			selects:  []string{"http", "sqlite"},
			multis:   [][]string{nil},
			confirms: []bool{false, false},
		}

		opts, err := interview.NewCollector(prompter, zap.NewNop()).Collect()
		Expect(err).NotTo(HaveOccurred())
		Expect(opts.Auth).To(BeNil())
		Expect(opts.Deployment).To(BeNil())

		By("materializing the project")
		dir := filepath.Join(GinkgoT().TempDir(), opts.Name)
		artifacts := scaffold.Generate(opts)
		Expect(scaffold.NewWriter(zap.NewNop()).Write(dir, artifacts)).To(Succeed())

		By("reading back byte-identical artifacts")
		for _, a := range artifacts {
			data, err := os.ReadFile(filepath.Join(dir, a.Path))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(a.Content))
		}

		By("parsing the generated config through the runtime loader")
		cfg, err := config.ParseFile(filepath.Join(dir, "promptforge.yaml"))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.Server.Name).To(Equal("demo"))
		Expect(cfg.Server.Transport).To(Equal(config.TransportStreamableHTTP))
		Expect(cfg.Storage.Type).To(Equal(config.StorageTypeDatabase))
	})
})
