package main

import (
	"github.com/sirupsen/logrus"

	"github.com/SynedraAcus/brutality/ecs/entity"
	"github.com/SynedraAcus/brutality/prefabs"
)

// prefabWatcher hot-reloads entity templates when the prefab data files
// change on disk, so template tweaks show up without a restart.
type prefabWatcher struct {
	watcher *prefabs.Watcher
	factory *entity.Factory
	log     *logrus.Entry
}

func newPrefabWatcher(factory *entity.Factory) (*prefabWatcher, error) {
	w, err := prefabs.NewWatcher("prefabs")
	if err != nil {
		return nil, err
	}
	return &prefabWatcher{
		watcher: w,
		factory: factory,
		log:     logrus.WithField("system", "watch"),
	}, nil
}

// poll drains pending file events without blocking the game loop.
func (p *prefabWatcher) poll() {
	for {
		select {
		case path, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if err := p.factory.ReloadTemplates(); err != nil {
				p.log.WithError(err).WithField("path", path).Warn("template reload failed")
				continue
			}
			p.log.WithField("path", path).Info("templates reloaded")
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			p.log.WithError(err).Warn("prefab watcher error")
		default:
			return
		}
	}
}

func (p *prefabWatcher) close() {
	_ = p.watcher.Close()
}
