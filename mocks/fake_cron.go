//+build !release

package mocks

import "sync"

// IFakeCron allows to trigger scheduled jobs manually.
type IFakeCron interface {
	Specs() []string
	RunAll()
}

type fakeCron struct {
	sync.Mutex
	specs []string
	jobs  []func()
}

func (f *fakeCron) AddFunc(spec string, cmd func()) (int, error) {
	f.Lock()
	defer f.Unlock()

	f.specs = append(f.specs, spec)
	f.jobs = append(f.jobs, cmd)
	return len(f.jobs), nil
}

func (*fakeCron) RemoveFunc(id int) {
}

func (*fakeCron) Stop() {
}

// Specs returns all scheduled specs.
func (f *fakeCron) Specs() []string {
	f.Lock()
	defer f.Unlock()
	return append([]string{}, f.specs...)
}

// RunAll invokes every scheduled job once.
func (f *fakeCron) RunAll() {
	f.Lock()
	jobs := append([]func(){}, f.jobs...)
	f.Unlock()

	for _, v := range jobs {
		v()
	}
}

// FakeNewCron creates a fake cron provider.
func FakeNewCron() *fakeCron {
	return &fakeCron{}
}
