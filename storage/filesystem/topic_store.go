// Package filesystem reads topics from a directory of JSON files, one file
// per topic.
package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/revelaction/wordspan/storage"
	tpc "github.com/revelaction/wordspan/topic"
)

const ext = ".json"

// TopicStore is a read-only topic store. The file <name>.json contains the
// expressions of the topic <name>:
//
//	[
//		[{"tag":"NNP*"},{"near":2,"lemmas":["be"]}],
//		[{"tag":"VB*","lemmas":["see","look"]}]
//	]
type TopicStore struct {
	root string
}

var _ storage.TopicReader = (*TopicStore)(nil)

func NewTopicStore(root string) *TopicStore {
	return &TopicStore{root: root}
}

func (th *TopicStore) ReadAll() (tpc.Library, error) {
	names, err := th.Names()
	if err != nil {
		return nil, err
	}

	topics := tpc.Library{}
	for _, n := range names {
		t, err := th.Read(n)
		if err != nil {
			return nil, err
		}

		topics = append(topics, t)
	}

	return topics, nil
}

func (th *TopicStore) Names() ([]string, error) {
	files, err := os.ReadDir(th.root)
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ext {
			continue
		}

		names = append(names, strings.TrimSuffix(file.Name(), ext))
	}

	sort.Strings(names)
	return names, nil
}

func (th *TopicStore) Read(name string) (tpc.Topic, error) {
	tf, err := os.ReadFile(filepath.Join(th.root, name+ext))
	if err != nil {
		return tpc.Topic{}, err
	}

	exprs := []tpc.TopicExpr{}
	if err := json.Unmarshal(tf, &exprs); err != nil {
		return tpc.Topic{}, fmt.Errorf("topic %s: %w", name, err)
	}

	for i, expr := range exprs {
		if err := validate(expr); err != nil {
			return tpc.Topic{}, fmt.Errorf("topic %s: expression %d: %w", name, i, err)
		}
	}

	return tpc.Assemble(name, exprs), nil
}

// validate applies to the stored expressions the rules of tpc.Parse
func validate(expr tpc.TopicExpr) error {
	if len(expr) == 0 {
		return fmt.Errorf("empty expression")
	}

	for i, item := range expr {
		if item.Near < 0 {
			return fmt.Errorf("item %d: negative near %d", i, item.Near)
		}
		if i == 0 && item.Near > 0 {
			return fmt.Errorf("first item can not have a near distance")
		}
	}

	return nil
}
