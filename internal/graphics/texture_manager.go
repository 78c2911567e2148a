package graphics

import (
	"sync"

	gl "github.com/go-gl/gl/v3.1/gles2"
)

// TextureCache keeps one texture per source path for a single context.
// Textures die with their context, so the owner must Release the cache
// whenever its renderer is disposed.
type TextureCache struct {
	mu       sync.Mutex
	textures map[string]uint32
}

func NewTextureCache() *TextureCache {
	return &TextureCache{textures: make(map[string]uint32)}
}

// Get returns the texture for path, loading it on first use.
func (c *TextureCache) Get(path string) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tex, ok := c.textures[path]; ok {
		return tex, nil
	}
	img, err := DecodeImage(path)
	if err != nil {
		return 0, err
	}
	tex, err := UploadTexture(img)
	if err != nil {
		return 0, err
	}
	c.textures[path] = tex
	return tex, nil
}

// Len returns the number of cached textures.
func (c *TextureCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.textures)
}

// Release deletes every cached texture. The context must be current.
func (c *TextureCache) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for path, tex := range c.textures {
		gl.DeleteTextures(1, &tex)
		delete(c.textures, path)
	}
}
