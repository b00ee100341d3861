package server_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/appleboy/gofight/v2"
	"github.com/mdouchement/spacetime/internal/model"
	"github.com/mdouchement/spacetime/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastjson"
)

func createMemory(t *testing.T, ctrl server.IOC, owner, content string, public bool) *model.Memory {
	memory := model.NewMemory(owner)
	memory.Content = content
	memory.CoverURL = "http://localhost/cover.png"
	memory.IsPublic = public
	require.NoError(t, ctrl.Database.Save(memory))
	return memory
}

func TestRequestMemoriesUnauthenticated(t *testing.T) {
	engine, ctrl := setup(t, true)
	memory := createMemory(t, ctrl, alice, "hello", true)

	requests := []*gofight.RequestConfig{
		gofight.New().GET("/memories"),
		gofight.New().GET("/memories/" + memory.ID),
		gofight.New().POST("/memories").SetJSON(gofight.D{"content": "x", "coverUrl": "y"}),
		gofight.New().PUT("/memories/" + memory.ID).SetJSON(gofight.D{"content": "x", "coverUrl": "y"}),
		gofight.New().DELETE("/memories/" + memory.ID),
		gofight.New().GET("/memories").SetHeader(gofight.H{"Authorization": "Bearer not.a.jwt"}),
		gofight.New().GET("/memories").SetHeader(gofight.H{"Authorization": "Basic Zm9vOmJhcg=="}),
	}

	for _, request := range requests {
		request.Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusUnauthorized, r.Code, rq.URL.String())
			assert.JSONEq(t, `{"error":{"tag":"invalid-auth", "message":"Invalid login credentials."}}`, r.Body.String())
		})
	}

	// Signed with another key.
	other := ctrl
	other.SigningKey = []byte("another secret")
	gofight.New().GET("/memories").SetHeader(bearer(other, alice)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
	})

	found, err := ctrl.Database.FindMemory(memory.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", found.Content)
}

func TestRequestMemoriesList(t *testing.T) {
	engine, ctrl := setup(t, true)

	gofight.New().GET("/memories").SetHeader(bearer(ctrl, alice)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `[]`, r.Body.String())
	})

	long := strings.Repeat("0123456789", 20)
	first := createMemory(t, ctrl, alice, long, false)
	createMemory(t, ctrl, bob, "public but not mine", true)
	second := createMemory(t, ctrl, alice, "short", true)

	// Make sure creation dates are distinct and ordered.
	second.SetCreatedAt(first.CreatedAt.Add(time.Second))
	require.NoError(t, ctrl.Database.Save(second))

	gofight.New().GET("/memories").SetHeader(bearer(ctrl, alice)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		require.NoError(t, err)

		memories := v.GetArray()
		require.Len(t, memories, 2)

		assert.Equal(t, first.ID, string(memories[0].GetStringBytes("id")))
		assert.Equal(t, "http://localhost/cover.png", string(memories[0].GetStringBytes("coverUrl")))
		assert.Equal(t, long[:115]+"...", string(memories[0].GetStringBytes("excerpt")))
		assert.Nil(t, memories[0].Get("content"))

		assert.Equal(t, second.ID, string(memories[1].GetStringBytes("id")))
		assert.Equal(t, "short...", string(memories[1].GetStringBytes("excerpt")))
	})
}

func TestRequestMemoriesCreateAndShow(t *testing.T) {
	engine, ctrl := setup(t, true)

	var id string
	params := gofight.D{
		"content":  "hello",
		"coverUrl": "http://x/y.png",
	}
	gofight.New().POST("/memories").SetHeader(bearer(ctrl, alice)).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusCreated, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		require.NoError(t, err)

		id = string(v.GetStringBytes("id"))
		assert.Regexp(t, `^[a-f0-9]{8}-[a-f0-9]{4}-4[a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`, id)
		assert.Equal(t, alice, string(v.GetStringBytes("userId")))
		assert.Equal(t, "hello", string(v.GetStringBytes("content")))
		assert.Equal(t, "http://x/y.png", string(v.GetStringBytes("coverUrl")))
		assert.False(t, v.GetBool("isPublic"))

		createdAt, err := time.Parse(time.RFC3339Nano, string(v.GetStringBytes("createdAt")))
		assert.NoError(t, err)
		assert.WithinDuration(t, time.Now(), createdAt, 2*time.Second)
	})
	require.NotEmpty(t, id)

	gofight.New().GET("/memories/"+id).SetHeader(bearer(ctrl, alice)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		require.NoError(t, err)

		assert.Equal(t, id, string(v.GetStringBytes("id")))
		assert.Equal(t, alice, string(v.GetStringBytes("userId")))
		assert.Equal(t, "hello", string(v.GetStringBytes("content")))
		assert.False(t, v.GetBool("isPublic"))
	})

	// Case insensitive id.
	gofight.New().GET("/memories/"+strings.ToUpper(id)).SetHeader(bearer(ctrl, alice)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
	})

	// Still private, bob can't read it.
	gofight.New().GET("/memories/"+id).SetHeader(bearer(ctrl, bob)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusForbidden, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"forbidden", "message":"Forbidden"}}`, r.Body.String())
		assert.NotContains(t, r.Body.String(), "hello")
	})
}

func TestRequestMemoriesShowPublic(t *testing.T) {
	engine, ctrl := setup(t, true)
	memory := createMemory(t, ctrl, alice, "for everyone", true)

	gofight.New().GET("/memories/"+memory.ID).SetHeader(bearer(ctrl, bob)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		require.NoError(t, err)
		assert.Equal(t, "for everyone", string(v.GetStringBytes("content")))
		assert.True(t, v.GetBool("isPublic"))
	})
}

func TestRequestMemoriesNotFound(t *testing.T) {
	engine, ctrl := setup(t, true)
	header := bearer(ctrl, alice)
	id := "d989ccc9-15c6-475e-839b-1690bd07d073"
	params := gofight.D{"content": "x", "coverUrl": "y"}

	requests := []*gofight.RequestConfig{
		gofight.New().GET("/memories/" + id).SetHeader(header),
		gofight.New().PUT("/memories/" + id).SetHeader(header).SetJSON(params),
		gofight.New().DELETE("/memories/" + id).SetHeader(header),
	}

	for _, request := range requests {
		request.Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusNotFound, r.Code, rq.Method)
			assert.JSONEq(t, `{"error":{"tag":"not-found", "message":"Memory not found."}}`, r.Body.String())
		})
	}
}

func TestRequestMemoriesInvalidID(t *testing.T) {
	engine, ctrl := setup(t, true)
	header := bearer(ctrl, alice)
	params := gofight.D{"content": "x", "coverUrl": "y"}

	for _, id := range []string{"42", "not-a-uuid", "d989ccc9-15c6-475e-839b-1690bd07d07", "d989ccc9x15c6-475e-839b-1690bd07d073"} {
		requests := []*gofight.RequestConfig{
			gofight.New().GET("/memories/" + id).SetHeader(header),
			gofight.New().PUT("/memories/" + id).SetHeader(header).SetJSON(params),
			gofight.New().DELETE("/memories/" + id).SetHeader(header),
		}

		for _, request := range requests {
			request.Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
				assert.Equal(t, http.StatusBadRequest, r.Code, rq.Method+" "+id)
				assert.JSONEq(t, `{"error":{"tag":"validation", "field":"id", "message":"id must be a valid UUID."}}`, r.Body.String())
			})
		}
	}

	all, err := ctrl.Database.FindMemories()
	assert.NoError(t, err)
	assert.Empty(t, all)
}

func TestRequestMemoriesInvalidBody(t *testing.T) {
	engine, ctrl := setup(t, true)
	header := bearer(ctrl, alice)

	cases := []struct {
		params   gofight.D
		expected string
	}{
		{
			params:   gofight.D{"coverUrl": "y"},
			expected: `{"error":{"tag":"validation", "field":"content", "message":"content is required."}}`,
		},
		{
			params:   gofight.D{"content": "x"},
			expected: `{"error":{"tag":"validation", "field":"coverUrl", "message":"coverUrl is required."}}`,
		},
		{
			params:   gofight.D{"content": 42, "coverUrl": "y"},
			expected: `{"error":{"tag":"validation", "field":"content", "message":"content must be a string."}}`,
		},
		{
			params:   gofight.D{"content": "x", "coverUrl": false},
			expected: `{"error":{"tag":"validation", "field":"coverUrl", "message":"coverUrl must be a string."}}`,
		},
		{
			params:   gofight.D{"content": nil, "coverUrl": "y"},
			expected: `{"error":{"tag":"validation", "field":"content", "message":"content is required."}}`,
		},
	}

	for _, c := range cases {
		gofight.New().POST("/memories").SetHeader(header).SetJSON(c.params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusBadRequest, r.Code)
			assert.JSONEq(t, c.expected, r.Body.String())
		})
	}

	gofight.New().POST("/memories").SetHeader(header).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"validation", "message":"Request body can't be empty."}}`, r.Body.String())
	})

	malformed := gofight.H{
		"Authorization": header["Authorization"],
		"Content-Type":  "application/json",
	}
	gofight.New().POST("/memories").SetHeader(malformed).SetBody(`{"content":`).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.Equal(t, "validation", string(fastjson.GetBytes(r.Body.Bytes(), "error", "tag")))
	})

	gofight.New().POST("/memories").SetHeader(malformed).SetBody(`"hello"`).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"validation", "message":"Request body must be a JSON object."}}`, r.Body.String())
	})

	all, err := ctrl.Database.FindMemories()
	assert.NoError(t, err)
	assert.Empty(t, all)
}

func TestRequestMemoriesCreateIsPublic(t *testing.T) {
	engine, ctrl := setup(t, true)

	cases := map[any]bool{
		true:    true,
		false:   false,
		1:       true,
		0:       false,
		"":      false,
		"false": true,
		"on":    true,
	}

	for value, expected := range cases {
		params := gofight.D{"content": "x", "coverUrl": "y", "isPublic": value}
		gofight.New().POST("/memories").SetHeader(bearer(ctrl, alice)).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusCreated, r.Code)
			assert.Equal(t, expected, fastjson.GetBool(r.Body.Bytes(), "isPublic"), value)
		})
	}
}

func TestRequestMemoriesUpdate(t *testing.T) {
	engine, ctrl := setup(t, true)
	memory := createMemory(t, ctrl, alice, "original", false)

	// Not the owner.
	params := gofight.D{"content": "hijacked", "coverUrl": "http://evil/x.png", "isPublic": true}
	gofight.New().PUT("/memories/"+memory.ID).SetHeader(bearer(ctrl, bob)).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"not-owner", "message":"Only the owner can modify this memory."}}`, r.Body.String())
	})

	found, err := ctrl.Database.FindMemory(memory.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", found.Content)
	assert.False(t, found.IsPublic)

	// Owner, twice.
	for _, content := range []string{"first update", "second update"} {
		params := gofight.D{"content": content, "coverUrl": "http://x/z.png", "isPublic": true}
		gofight.New().PUT("/memories/"+memory.ID).SetHeader(bearer(ctrl, alice)).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusOK, r.Code)

			v, err := fastjson.Parse(r.Body.String())
			require.NoError(t, err)
			assert.Equal(t, memory.ID, string(v.GetStringBytes("id")))
			assert.Equal(t, alice, string(v.GetStringBytes("userId")))
			assert.Equal(t, content, string(v.GetStringBytes("content")))
			assert.Equal(t, "http://x/z.png", string(v.GetStringBytes("coverUrl")))
			assert.True(t, v.GetBool("isPublic"))
		})
	}

	// isPublic is reset when omitted.
	params = gofight.D{"content": "third update", "coverUrl": "http://x/z.png"}
	gofight.New().PUT("/memories/"+memory.ID).SetHeader(bearer(ctrl, alice)).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.False(t, fastjson.GetBool(r.Body.Bytes(), "isPublic"))
	})

	all, err := ctrl.Database.FindMemories()
	assert.NoError(t, err)
	if assert.Len(t, all, 1) {
		assert.Equal(t, "third update", all[0].Content)
		assert.Equal(t, alice, all[0].UserID)
		assert.True(t, memory.CreatedAt.Equal(*all[0].CreatedAt))
	}
}

func TestRequestMemoriesDelete(t *testing.T) {
	engine, ctrl := setup(t, true)
	memory := createMemory(t, ctrl, alice, "to be removed", true)

	gofight.New().DELETE("/memories/"+memory.ID).SetHeader(bearer(ctrl, bob)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"not-owner", "message":"Only the owner can modify this memory."}}`, r.Body.String())
	})

	_, err := ctrl.Database.FindMemory(memory.ID)
	assert.NoError(t, err)

	gofight.New().DELETE("/memories/"+memory.ID).SetHeader(bearer(ctrl, alice)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNoContent, r.Code)
		assert.Empty(t, r.Body.String())
	})

	_, err = ctrl.Database.FindMemory(memory.ID)
	assert.True(t, ctrl.Database.IsNotFound(err))
}

func TestRequestMemoriesWithoutAuth(t *testing.T) {
	engine, ctrl := setup(t, false)
	private := createMemory(t, ctrl, alice, "alice's private memory", false)

	gofight.New().GET("/memories").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.Len(t, fastjson.MustParse(r.Body.String()).GetArray(), 1)
	})

	gofight.New().GET("/memories/"+private.ID).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.Equal(t, "alice's private memory", string(fastjson.GetBytes(r.Body.Bytes(), "content")))
	})

	params := gofight.D{"content": "open", "coverUrl": "http://x/y.png"}
	gofight.New().POST("/memories").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusCreated, r.Code)
		assert.Equal(t, model.AnonymousUserID, string(fastjson.GetBytes(r.Body.Bytes(), "userId")))
	})

	gofight.New().PUT("/memories/"+private.ID).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.Equal(t, alice, string(fastjson.GetBytes(r.Body.Bytes(), "userId")))
		assert.Equal(t, "open", string(fastjson.GetBytes(r.Body.Bytes(), "content")))
	})

	gofight.New().DELETE("/memories/"+private.ID).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNoContent, r.Code)
	})

	gofight.New().GET("/memories").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.Len(t, fastjson.MustParse(r.Body.String()).GetArray(), 1)
	})
}
