// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arch

import (
	"fmt"

	"cogentcore.org/core/base/iox/jsonx"
)

// legacyDocument is the first document layout, in which every
// application carried its own list of servers and all object
// properties were at the top level of the application.
type legacyDocument struct {
	Info         Info                `json:"info"`
	Scene        *Scene              `json:"scene"`
	Applications []legacyApplication `json:"applications"`
	Connections  []struct {
		Source string `json:"source"`
		Target string `json:"target"`
	} `json:"connections"`
}

type legacyApplication struct {
	Name     string   `json:"name"`
	Color    string   `json:"color"`
	Position Vec3     `json:"position"`
	Rotation Vec3     `json:"rotation"`
	Scale    Vec3     `json:"scale"`
	Geometry Geometry `json:"geometry"`
	Servers  []struct {
		Name string `json:"name"`
	} `json:"servers"`
}

// legacyServerSpacing is the vertical distance between an application
// and each of its servers after migration.
const legacyServerSpacing = 2

func decodeLegacy(data []byte) (*Document, error) {
	var ld legacyDocument
	if err := jsonx.ReadBytes(&ld, data); err != nil {
		return nil, fmt.Errorf("decoding legacy document: %w", err)
	}
	doc := New(ld.Info.Name, ld.Info.Description)
	doc.Info.ID = ld.Info.ID
	if ld.Scene != nil {
		doc.Scene = *ld.Scene
	}
	for _, app := range ld.Applications {
		scale := app.Scale
		if scale == (Vec3{}) {
			scale = V3(1, 1, 1)
		}
		doc.Components = append(doc.Components, Component{
			Name: app.Name,
			Type: "app",
			Object: Object{
				Color:    app.Color,
				Position: app.Position,
				Rotation: app.Rotation,
				Scale:    scale,
				Geometry: app.Geometry,
			},
		})
		if len(app.Servers) == 0 {
			continue
		}
		group := Group{
			Name:        app.Name,
			Components:  []string{app.Name},
			BoundingBox: BoundingBox{Padding: 0.5, Color: app.Color},
		}
		for i, srv := range app.Servers {
			pos := app.Position
			pos[1] -= legacyServerSpacing * float64(i+1)
			doc.Components = append(doc.Components, Component{
				Name: srv.Name,
				Type: "server",
				Object: Object{
					Color:    app.Color,
					Position: pos,
					Scale:    V3(0.5, 0.5, 0.5),
					Geometry: Box,
				},
			})
			group.Components = append(group.Components, srv.Name)
		}
		doc.Groups = append(doc.Groups, group)
	}
	for _, c := range ld.Connections {
		doc.Connections = append(doc.Connections, Connection{
			Source:  c.Source,
			Target:  c.Target,
			Flow:    FlowOut,
			OutRate: 1,
		})
	}
	return doc, nil
}
