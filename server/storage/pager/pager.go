package pager

import (
	gxbytes "github.com/dubbogo/gost/bytes"
	"github.com/pkg/errors"

	"github.com/zhukovaskychina/xmysql-study/logger"
	"github.com/zhukovaskychina/xmysql-study/server/common"
	"github.com/zhukovaskychina/xmysql-study/server/storage/blocks"
)

// Pager 把页面号映射到常驻内存的页面缓冲。
// 页面第一次被访问时从磁盘加载，之后整个会话都常驻，没有淘汰策略；
// 上限 TABLE_MAX_PAGES 个页面，提高上限之前必须先加淘汰。
type Pager struct {
	file       *blocks.BlockFile
	fileLength int64
	pages      map[uint32]*[]byte
}

// Open 打开或创建文件，所有页面槽位为空
func Open(filename string) (*Pager, error) {
	file, err := blocks.NewBlockFile(filename)
	if err != nil {
		return nil, common.NewFatal("open", err)
	}
	logger.Debugf("pager opened %s, file length %d", filename, file.Size())
	return &Pager{
		file:       file,
		fileLength: file.Size(),
		pages:      make(map[uint32]*[]byte),
	}, nil
}

// FileLength 打开时文件的长度
func (pager *Pager) FileLength() int64 {
	return pager.fileLength
}

// NumPagesOnDisk 打开时磁盘上已有的页面数，最后一页可以不完整
func (pager *Pager) NumPagesOnDisk() uint32 {
	numPages := pager.fileLength / common.PAGE_SIZE
	if pager.fileLength%common.PAGE_SIZE != 0 {
		numPages++
	}
	return uint32(numPages)
}

// NumResident 当前常驻内存的页面数
func (pager *Pager) NumResident() int {
	return len(pager.pages)
}

// IsResident 页面是否已经加载
func (pager *Pager) IsResident(pageNum uint32) bool {
	_, ok := pager.pages[pageNum]
	return ok
}

// BlockFile 底层文件，用于统计读写次数
func (pager *Pager) BlockFile() *blocks.BlockFile {
	return pager.file
}

// GetPage 返回页面缓冲，未命中时分配并从磁盘读取
func (pager *Pager) GetPage(pageNum uint32) ([]byte, error) {
	if pageNum >= common.TABLE_MAX_PAGES {
		return nil, common.NewFatal("get_page", errors.Wrapf(common.ErrPageOutOfBounds, "page %d, limit %d", pageNum, common.TABLE_MAX_PAGES))
	}
	if bufp, ok := pager.pages[pageNum]; ok {
		return *bufp, nil
	}

	bufp := gxbytes.GetBytes(common.PAGE_SIZE)
	page := (*bufp)[:common.PAGE_SIZE]
	// 池中的缓冲可能残留上一次的内容
	for i := range page {
		page[i] = 0
	}
	*bufp = page

	if pageNum < pager.NumPagesOnDisk() {
		n, err := pager.file.ReadBlock(int64(pageNum)*common.PAGE_SIZE, page)
		if err != nil {
			gxbytes.PutBytes(bufp)
			return nil, common.NewFatal("get_page", errors.Wrapf(err, "error reading page %d", pageNum))
		}
		logger.Debugf("page %d loaded, %d bytes", pageNum, n)
	}
	pager.pages[pageNum] = bufp
	return page, nil
}

// FlushPage 把页面前size字节写回磁盘，没有脏页跟踪，由调用方决定写哪些页面
func (pager *Pager) FlushPage(pageNum uint32, size int) error {
	bufp, ok := pager.pages[pageNum]
	if !ok {
		return common.NewFatal("flush_page", errors.Wrapf(common.ErrPageNotResident, "page %d", pageNum))
	}
	if size < 0 || size > common.PAGE_SIZE {
		return common.NewFatal("flush_page", errors.Errorf("invalid flush size %d for page %d", size, pageNum))
	}
	if err := pager.file.WriteBlock(int64(pageNum)*common.PAGE_SIZE, (*bufp)[:size]); err != nil {
		return common.NewFatal("flush_page", err)
	}
	return nil
}

// ReleasePage 归还页面缓冲，不写盘
func (pager *Pager) ReleasePage(pageNum uint32) {
	if bufp, ok := pager.pages[pageNum]; ok {
		delete(pager.pages, pageNum)
		gxbytes.PutBytes(bufp)
	}
}

// ResidentPages 常驻页面号，无序
func (pager *Pager) ResidentPages() []uint32 {
	pageNums := make([]uint32, 0, len(pager.pages))
	for pageNum := range pager.pages {
		pageNums = append(pageNums, pageNum)
	}
	return pageNums
}

// Sync 把文件内容刷到磁盘
func (pager *Pager) Sync() error {
	if err := pager.file.Sync(); err != nil {
		return common.NewFatal("sync", err)
	}
	return nil
}

// Close 释放所有剩余页面并关闭文件，剩余页面不写盘
func (pager *Pager) Close() error {
	for _, pageNum := range pager.ResidentPages() {
		pager.ReleasePage(pageNum)
	}
	if err := pager.file.Close(); err != nil {
		return common.NewFatal("close", err)
	}
	return nil
}
